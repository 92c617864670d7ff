package cli

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lisanmuaddib/twindle/pkg/render"
	"github.com/lisanmuaddib/twindle/pkg/twindle"
)

// parse runs the command with a run func that only captures the config
func parse(args ...string) (twindle.RunConfig, error) {
	var captured twindle.RunConfig
	cmd := NewRootCmd(func(_ context.Context, cfg twindle.RunConfig) error {
		captured = cfg
		return nil
	})
	cmd.SetOut(GinkgoWriter)
	cmd.SetErr(GinkgoWriter)
	cmd.SetArgs(normalizeArgs(args))
	err := cmd.ExecuteContext(context.Background())
	return captured, err
}

func expectUsageError(err error) {
	var usageErr *UsageError
	Expect(errors.As(err, &usageErr)).To(BeTrue(), "expected a usage error, got %v", err)
	Expect(twindle.IsUserError(err, twindle.KindInvalidArguments)).To(BeTrue())
}

var _ = Describe("argument resolution", func() {
	It("applies the defaults", func() {
		cfg, err := parse("123")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(twindle.RunConfig{
			Format:    render.FormatPDF,
			OutputDir: ".",
			TweetID:   "123",
			NumTweets: 10,
		}))
	})

	It("reads every flag", func() {
		cfg, err := parse("-i", "123", "-u", "42", "-n", "5", "-f", "epub", "-o", "out",
			"-a", "v2", "-d", "/tmp/docs", "-m", "-p")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.TweetID).To(Equal("123"))
		Expect(cfg.UserID).To(Equal("42"))
		Expect(cfg.NumTweets).To(Equal(5))
		Expect(cfg.Format).To(Equal(render.FormatEPUB))
		Expect(cfg.OutputFilename).To(Equal("out"))
		Expect(cfg.AppendToFilename).To(Equal("v2"))
		Expect(cfg.OutputDir).To(Equal("/tmp/docs"))
		Expect(cfg.Mock).To(BeTrue())
		Expect(cfg.Scrape).To(BeTrue())
		Expect(cfg.Deliver).To(BeFalse())
	})

	Context("delivery flag", func() {
		It("takes the following token as the address", func() {
			cfg, err := parse("123", "-s", "me@kindle.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Deliver).To(BeTrue())
			Expect(cfg.KindleEmail).To(Equal("me@kindle.com"))
			Expect(cfg.TweetID).To(Equal("123"))
		})

		It("falls back to the environment when bare", func() {
			cfg, err := parse("-s", "-i", "123")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Deliver).To(BeTrue())
			Expect(cfg.KindleEmail).To(BeEmpty())
		})

		It("is bare at the end of the line", func() {
			cfg, err := parse("123", "--send-to-kindle")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Deliver).To(BeTrue())
			Expect(cfg.KindleEmail).To(BeEmpty())
		})

		It("accepts the long form with an equals sign", func() {
			cfg, err := parse("123", "--send-to-kindle=me@kindle.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.KindleEmail).To(Equal("me@kindle.com"))
		})

		It("keeps a malformed inline address for the validator", func() {
			cfg, err := parse("123", "-s", "not-an-address")
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.KindleEmail).To(Equal("not-an-address"))
		})
	})

	DescribeTable("rejected command lines",
		func(args []string) {
			_, err := parse(args...)
			expectUsageError(err)
		},
		Entry("no target", []string{"-f", "pdf"}),
		Entry("unknown format", []string{"123", "-f", "mobi"}),
		Entry("zero tweets", []string{"-u", "42", "-n", "0"}),
		Entry("unknown flag", []string{"123", "--colour"}),
		Entry("two positional ids", []string{"123", "456"}),
		Entry("conflicting ids", []string{"123", "-i", "456"}),
	)

	It("allows mock mode without a target", func() {
		cfg, err := parse("--mock")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Mock).To(BeTrue())
	})
})

var _ = Describe("normalizeArgs", func() {
	DescribeTable("delivery flag rewriting",
		func(in, out []string) {
			Expect(normalizeArgs(in)).To(Equal(out))
		},
		Entry("value follows", []string{"-s", "a@b.co", "1"}, []string{"--send-to-kindle=a@b.co", "1"}),
		Entry("flag follows", []string{"-s", "-m"}, []string{"--send-to-kindle", "-m"}),
		Entry("last argument", []string{"1", "-s"}, []string{"1", "--send-to-kindle"}),
		Entry("after terminator", []string{"--", "-s", "x"}, []string{"--", "-s", "x"}),
		Entry("other flags untouched", []string{"-f", "md", "1"}, []string{"-f", "md", "1"}),
	)
})
