package cmd

import (
	"github.com/pakrat-io/pakrat/pkg/manifest"
	"github.com/pakrat-io/pakrat/pkg/origin"
	"github.com/pakrat-io/pakrat/pkg/plogger"
)

// loaderOpts lets tests override the loader's environment, directories,
// and working-directory lookup
var loaderOpts []manifest.LoaderOption

// manifestSources turns the positional manifest files and any -D defines
// into loader sources. Defines come last so they override file values.
func manifestSources(args []string) []manifest.Source {
	files := args
	if len(files) == 0 {
		files = config.Manifests
	}
	sources := make([]manifest.Source, 0, len(files)+len(params.manifest.defines))
	for _, f := range files {
		sources = append(sources, manifest.File(f))
	}
	for _, d := range params.manifest.defines {
		name, value := splitDefine(d)
		sources = append(sources, manifest.Define(name, value))
	}
	return sources
}

// loadManifest resolves the manifest for a command run, applying any -p
// package selection. Structural errors are fatal; per-package problems
// have already been diagnosed and skipped by the loader.
func loadManifest(args []string) *manifest.Manifest {
	sources := manifestSources(args)
	if len(sources) == 0 {
		logFatalln("no manifest files given")
		return nil
	}
	logger, err := plogger.GetLogger(params.root.logLevel)
	if err != nil {
		wrapFatalln("failed to set log level", err)
		return nil
	}
	diag := diagLogger()
	opts := []manifest.LoaderOption{
		manifest.WithFs(cmdFs),
		manifest.WithDiag(diag),
		manifest.WithLogger(logger),
		manifest.WithOriginOptions(
			origin.Stdout(cmdOut),
			origin.Diag(diag),
			origin.Fs(cmdFs),
			origin.WithRunner(cmdRunner),
			origin.Logger(logger),
		),
	}
	l := manifest.NewLoader(append(opts, loaderOpts...)...)
	m, err := l.Load(sources...)
	if err != nil {
		wrapFatalln("cannot load manifest", err)
		return nil
	}
	if len(params.manifest.packages) != 0 {
		m = m.Select(params.manifest.packages)
	}
	return m
}

// eachActive visits the packages a repository operation applies to:
// loaded ones, or every selected one under --all.
func eachActive(m *manifest.Manifest, fn func(*manifest.Package)) {
	m.Each(func(p *manifest.Package) {
		if params.manifest.all || p.Loaded() {
			fn(p)
		}
	})
}
