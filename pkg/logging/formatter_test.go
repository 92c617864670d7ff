package logging_test

import (
	"bytes"
	"errors"

	"github.com/lisanmuaddib/twindle/pkg/logging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

var _ = Describe("NewLogger", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = &bytes.Buffer{}
	})

	It("defaults to warn", func() {
		Expect(logging.NewLogger(out, "", false).GetLevel()).To(Equal(logrus.WarnLevel))
		Expect(logging.NewLogger(out, "chatty", false).GetLevel()).To(Equal(logrus.WarnLevel))
	})

	It("honours LOG_LEVEL values", func() {
		Expect(logging.NewLogger(out, "info", false).GetLevel()).To(Equal(logrus.InfoLevel))
	})

	It("switches to debug in dev mode", func() {
		Expect(logging.NewLogger(out, "error", true).GetLevel()).To(Equal(logrus.DebugLevel))
	})

	It("writes plain lines with priority fields first", func() {
		log := logging.NewLogger(out, "debug", false)
		log.WithFields(logrus.Fields{
			"zeta":     1,
			"tweet_id": "123",
			"run_id":   "abc",
		}).WithError(errors.New("boom")).Debug("Acquiring tweets")

		line := out.String()
		Expect(line).NotTo(ContainSubstring("\x1b["))
		Expect(line).To(ContainSubstring(`DEBUG   Acquiring tweets run_id="abc" tweet_id="123" error="boom" zeta=1`))
		Expect(line).To(HaveSuffix("\n"))
	})
})
