package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twindle/pkg/render"
	"github.com/lisanmuaddib/twindle/pkg/status"
	"github.com/lisanmuaddib/twindle/pkg/twindle"
)

type brokenSourceFactory struct {
	twindle.Factory
}

func (brokenSourceFactory) TweetSource() (twindle.TweetSource, error) {
	return nil, errors.New("api unreachable")
}

var _ = Describe("Run", func() {
	var (
		stdout, stderr *bytes.Buffer
		reporter       *status.Recorder
		env            *twindle.EnvConfig
		logger         *logrus.Logger
		dir            string
	)

	BeforeEach(func() {
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		reporter = status.NewRecorder()
		env = &twindle.EnvConfig{BearerToken: "token"}
		logger = logrus.New()
		logger.SetOutput(GinkgoWriter)
		dir = GinkgoT().TempDir()
	})

	run := func(factory twindle.Factory, args ...string) int {
		if factory == nil {
			factory = NewFactory(*env, logger)
		}
		return Run(context.Background(), args, Options{
			Stdout:   stdout,
			Stderr:   stderr,
			Env:      env,
			Logger:   logger,
			Reporter: reporter,
			Factory:  factory,
		})
	}

	It("renders the mock thread and exits cleanly", func() {
		code := run(nil, "--mock", "-f", "md", "-d", dir)

		Expect(code).To(Equal(ExitOK))
		Expect(stderr.String()).To(BeEmpty())
		Expect(filepath.Join(dir, "twindleapp-Feb-25-2021-14:02.md")).To(BeAnExistingFile())

		event, ok := reporter.Terminal()
		Expect(ok).To(BeTrue())
		Expect(event.State).To(Equal(status.StateSucceeded))
		Expect(event.Message).To(ContainSubstring("twindleapp-Feb-25-2021-14:02.md"))
	})

	It("honours the explicit name and suffix", func() {
		Expect(run(nil, "-m", "-f", "html", "-d", dir, "-o", "reading", "-a", "week8")).To(Equal(ExitOK))
		Expect(filepath.Join(dir, "reading-week8.html")).To(BeAnExistingFile())
	})

	It("reports a missing token once and exits with failure", func() {
		env.BearerToken = ""

		code := run(nil, "--mock", "-d", dir)

		Expect(code).To(Equal(ExitFailure))
		Expect(stderr.String()).To(Equal(
			"MissingCredential: Please ensure that you have a .env file containing a value for TWITTER_AUTH_TOKEN\n"))
		event, _ := reporter.Terminal()
		Expect(event).To(Equal(status.Event{State: status.StateFailed, Message: "MissingCredential"}))

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("rejects an inline address before any work", func() {
		env.MailHost = "smtp.example.com"
		env.MailAccount = "me@example.com"
		env.MailPassword = "secret"

		code := run(nil, "--mock", "-d", dir, "-s", "nobody")

		Expect(code).To(Equal(ExitFailure))
		Expect(stderr.String()).To(ContainSubstring("InvalidKindleAddress: Enter a valid email address"))
	})

	It("exits with the usage status for a bad command line", func() {
		code := run(nil, "-f", "mobi", "123")

		Expect(code).To(Equal(ExitUsage))
		Expect(stderr.String()).To(ContainSubstring("InvalidArguments: unsupported format"))
		Expect(stderr.String()).To(ContainSubstring("--help"))
		Expect(reporter.State()).To(Equal(status.StateIdle))
	})

	It("labels internal failures and prints the stack in dev mode", func() {
		env.Dev = true

		code := run(brokenSourceFactory{}, "123", "-d", dir)

		Expect(code).To(Equal(ExitFailure))
		Expect(stderr.String()).To(HavePrefix("Error: "))
		Expect(stderr.String()).To(ContainSubstring("api unreachable"))
		Expect(stderr.String()).To(ContainSubstring("twindle.(*Runner).Run"))
		event, _ := reporter.Terminal()
		Expect(event.Message).To(Equal(twindle.InternalLabel))
	})

	It("keeps internal failures to one line by default", func() {
		code := run(brokenSourceFactory{}, "123", "-d", dir)

		Expect(code).To(Equal(ExitFailure))
		Expect(stderr.String()).To(Equal(
			"Error: failed to create tweet source: api unreachable\n"))
	})
})

var _ = Describe("Factory", func() {
	It("builds a renderer without touching the environment", func() {
		factory := NewFactory(twindle.EnvConfig{}, logrus.New())
		renderer, err := factory.Renderer()
		Expect(err).NotTo(HaveOccurred())
		Expect(renderer).To(BeAssignableToTypeOf(&render.Renderer{}))
	})
})
