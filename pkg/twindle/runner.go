// Package twindle sequences a single run: environment checks, tweet
// acquisition, filename derivation, rendering and optional Kindle delivery.
package twindle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twindle/pkg/render"
	"github.com/lisanmuaddib/twindle/pkg/status"
)

// Config holds the collaborators of a Runner
type Config struct {
	Env      EnvConfig
	Factory  Factory
	Reporter status.Reporter
	Logger   *logrus.Logger
}

// Runner executes one invocation and drives the reporter to exactly one
// terminal state
type Runner struct {
	env      EnvConfig
	factory  Factory
	reporter status.Reporter
	log      *logrus.Entry
}

// New creates a Runner
func New(config Config) (*Runner, error) {
	if config.Factory == nil {
		return nil, fmt.Errorf("factory is required")
	}
	if config.Reporter == nil {
		return nil, fmt.Errorf("reporter is required")
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	return &Runner{
		env:      config.Env,
		factory:  config.Factory,
		reporter: config.Reporter,
		log:      config.Logger.WithField("run_id", uuid.NewString()),
	}, nil
}

// Run executes the whole flow. On failure the reporter is failed with the
// error's label before Run returns; on success it is succeeded with the
// saved file name.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (artifact render.Artifact, err error) {
	r.reporter.Start("Fetching tweets")
	defer func() {
		if err != nil {
			r.reporter.Fail(Label(err))
		}
	}()

	if err := ValidateEnvironment(r.env, cfg, r.reporter); err != nil {
		return render.Artifact{}, err
	}

	collection, err := r.acquire(ctx, cfg)
	if err != nil {
		return render.Artifact{}, pkgerrors.WithStack(err)
	}

	name := DeriveFilename(collection, cfg.OutputFilename, cfg.AppendToFilename)
	path := render.OutputPath(cfg.OutputDir, name, cfg.Format)

	r.log.WithFields(logrus.Fields{
		"tweet_count": collection.Len(),
		"format":      cfg.Format.String(),
		"path":        path,
	}).Debug("Rendering tweets")

	renderer, err := r.factory.Renderer()
	if err != nil {
		return render.Artifact{}, pkgerrors.WithStack(fmt.Errorf("failed to create renderer: %w", err))
	}
	artifact, err = renderer.Render(ctx, collection, cfg.Format, path)
	if err != nil {
		return render.Artifact{}, pkgerrors.WithStack(fmt.Errorf("failed to render tweets: %w", err))
	}

	if cfg.Deliver {
		address := ResolveKindleEmail(r.env, cfg)
		r.log.WithField("kindle_email", address).Debug("sending to kindle")

		deliverer, err := r.factory.Deliverer()
		if err != nil {
			return render.Artifact{}, pkgerrors.WithStack(fmt.Errorf("failed to create mail sender: %w", err))
		}
		if err := deliverer.Send(ctx, address, artifact.Path); err != nil {
			return render.Artifact{}, pkgerrors.WithStack(fmt.Errorf("failed to send to kindle: %w", err))
		}
	}

	r.reporter.Succeed(SuccessMessage(artifact))
	return artifact, nil
}

var formatColors = map[render.Format]func(format string, a ...interface{}) string{
	render.FormatPDF:      color.RedString,
	render.FormatEPUB:     color.MagentaString,
	render.FormatHTML:     color.YellowString,
	render.FormatMarkdown: color.BlueString,
	render.FormatDOC:      color.GreenString,
}

// SuccessMessage is the final status line of a successful run
func SuccessMessage(artifact render.Artifact) string {
	fileName := filepath.Base(artifact.Path)
	colorize, ok := formatColors[artifact.Format]
	if !ok {
		colorize = color.WhiteString
	}
	return "Your " + color.CyanString("tweets") + " are saved into " + colorize("%s", fileName)
}
