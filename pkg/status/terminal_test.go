package status_test

import (
	"bytes"
	"strings"

	"github.com/lisanmuaddib/twindle/pkg/status"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Terminal", func() {
	var (
		out      *bytes.Buffer
		reporter *status.Terminal
	)

	BeforeEach(func() {
		out = &bytes.Buffer{}
		reporter = status.NewTerminal(out)
	})

	It("prints plain lines when the writer is not a terminal", func() {
		reporter.Start("Fetching tweets")
		reporter.Succeed("Your tweets are saved into alice.pdf")

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(Equal("Fetching tweets"))
		Expect(lines[1]).To(ContainSubstring("Your tweets are saved into alice.pdf"))
		Expect(reporter.State()).To(Equal(status.StateSucceeded))
	})

	It("reports the failure label", func() {
		reporter.Start("Fetching tweets")
		reporter.Fail("MissingCredential")

		Expect(out.String()).To(ContainSubstring("MissingCredential"))
		Expect(reporter.State()).To(Equal(status.StateFailed))
	})

	It("ignores every transition after the first terminal one", func() {
		reporter.Start("Fetching tweets")
		reporter.Fail("InvalidKindleAddress")
		reporter.Fail("Error")
		reporter.Succeed("done")
		reporter.Start("again")

		Expect(strings.Count(out.String(), "\n")).To(Equal(2))
		Expect(out.String()).NotTo(ContainSubstring("done"))
		Expect(out.String()).NotTo(ContainSubstring("Error"))
		Expect(reporter.State()).To(Equal(status.StateFailed))
	})

	It("can fail before it was started", func() {
		reporter.Fail("InvalidArguments")

		Expect(out.String()).To(ContainSubstring("InvalidArguments"))
		Expect(reporter.State()).To(Equal(status.StateFailed))
	})
})

var _ = Describe("Recorder", func() {
	It("records a single terminal event", func() {
		recorder := status.NewRecorder()
		Expect(recorder.State()).To(Equal(status.StateIdle))

		recorder.Start("Fetching tweets")
		recorder.Succeed("ok")
		recorder.Fail("Error")

		Expect(recorder.Events).To(HaveLen(2))
		event, ok := recorder.Terminal()
		Expect(ok).To(BeTrue())
		Expect(event.State).To(Equal(status.StateSucceeded))
		Expect(event.Message).To(Equal("ok"))
	})
})
