// Package cli resolves the command line into a run and presents its outcome.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lisanmuaddib/twindle/pkg/render"
	"github.com/lisanmuaddib/twindle/pkg/twindle"
)

const (
	deliveryFlag = "send-to-kindle"
	// kindleFromEnv is the value of a bare delivery flag: deliver to KINDLE_EMAIL
	kindleFromEnv = "KINDLE_EMAIL"

	defaultNumTweets = 10
)

// RunFunc executes a resolved run
type RunFunc func(ctx context.Context, cfg twindle.RunConfig) error

// UsageError is a command line that could not be resolved into a run
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageError(format string, a ...interface{}) error {
	return &UsageError{Err: twindle.NewUserError(twindle.KindInvalidArguments, fmt.Sprintf(format, a...))}
}

type options struct {
	tweetID      string
	userID       string
	numTweets    int
	format       string
	output       string
	appendSuffix string
	outputDir    string
	mock         bool
	scrape       bool
	sendToKindle string
}

// NewRootCmd builds the twindle command. run is called with the resolved
// configuration; cobra's own flag errors and resolution failures come back
// from Execute as *UsageError.
func NewRootCmd(run RunFunc) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "twindle [tweet-id]",
		Short: "Save a tweet thread or a user's recent tweets as a document and send it to your Kindle",
		Example: `  twindle 1364826301027115008 -f epub
  twindle -u 2244994945 -n 20 -f md -o digest
  twindle -p 1364826301027115008 -s me@kindle.com`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageError("expected at most one tweet id, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.tweetID, "tweet-id", "i", "", "ID of the tweet to fetch along with its thread")
	flags.StringVarP(&opts.userID, "user-id", "u", "", "ID of the user whose recent tweets are fetched")
	flags.IntVarP(&opts.numTweets, "num-tweets", "n", defaultNumTweets, "Maximum number of tweets fetched with --user-id")
	flags.StringVarP(&opts.format, "format", "f", render.DefaultFormat.String(),
		fmt.Sprintf("Output format: %s", strings.Join(formatNames(), ", ")))
	flags.StringVarP(&opts.output, "output", "o", "", "Output file name without extension")
	flags.StringVarP(&opts.appendSuffix, "append", "a", "", "Suffix appended to the output file name")
	flags.StringVarP(&opts.outputDir, "output-dir", "d", ".", "Directory the document is written to")
	flags.BoolVarP(&opts.mock, "mock", "m", false, "Use bundled sample tweets instead of the API")
	flags.BoolVarP(&opts.scrape, "scrape", "p", false, "Find the thread by scraping, then fetch it in one batch")
	flags.StringVarP(&opts.sendToKindle, deliveryFlag, "s", "",
		"Email the document to Kindle, optionally to the given address instead of KINDLE_EMAIL")
	flags.Lookup(deliveryFlag).NoOptDefVal = kindleFromEnv

	return cmd
}

func formatNames() []string {
	var names []string
	for _, f := range render.Formats() {
		names = append(names, f.String())
	}
	return names
}

// resolve validates the parsed flags and builds the RunConfig
func (o *options) resolve(flags *pflag.FlagSet, args []string) (twindle.RunConfig, error) {
	tweetID := strings.TrimSpace(o.tweetID)
	if len(args) == 1 {
		positional := strings.TrimSpace(args[0])
		if tweetID != "" && tweetID != positional {
			return twindle.RunConfig{}, usageError("tweet id given twice: %q and %q", tweetID, positional)
		}
		tweetID = positional
	}

	format, err := render.ParseFormat(o.format)
	if err != nil {
		return twindle.RunConfig{}, usageError("%v", err)
	}

	if o.numTweets < 1 {
		return twindle.RunConfig{}, usageError("--num-tweets must be at least 1, got %d", o.numTweets)
	}

	userID := strings.TrimSpace(o.userID)
	if tweetID == "" && userID == "" && !o.mock {
		return twindle.RunConfig{}, usageError("a tweet id, --user-id or --mock is required")
	}

	cfg := twindle.RunConfig{
		Format:           format,
		OutputFilename:   o.output,
		AppendToFilename: o.appendSuffix,
		OutputDir:        o.outputDir,
		TweetID:          tweetID,
		UserID:           userID,
		NumTweets:        o.numTweets,
		Mock:             o.mock,
		Scrape:           o.scrape,
		Deliver:          flags.Changed(deliveryFlag),
	}
	if address := strings.TrimSpace(o.sendToKindle); cfg.Deliver && address != kindleFromEnv {
		cfg.KindleEmail = address
	}
	return cfg, nil
}

// normalizeArgs makes the optional value of the delivery flag explicit.
// pflag only binds optional values written as --flag=value, while the
// command line accepts "-s me@kindle.com". A token after the flag that does
// not start with "-" is its value; a bare flag means KINDLE_EMAIL.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if arg != "-s" && arg != "--"+deliveryFlag {
			out = append(out, arg)
			continue
		}
		if i+1 < len(args) && args[i+1] != "" && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, "--"+deliveryFlag+"="+args[i+1])
			i++
			continue
		}
		out = append(out, "--"+deliveryFlag)
	}
	return out
}
