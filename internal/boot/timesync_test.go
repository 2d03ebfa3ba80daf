package boot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/matrixdemo/internal/boot"
)

var _ = Describe("ParseWorldTime", func() {
	It("parses the datetime with its offset", func() {
		t, err := boot.ParseWorldTime([]byte(`{"datetime":"2024-01-02T03:04:05.678+05:30"}`))
		Expect(err).NotTo(HaveOccurred())
		_, offset := t.Zone()
		Expect(offset).To(Equal(5*3600 + 30*60))
		Expect(t.Hour()).To(Equal(3))
	})

	DescribeTable("rejects unusable payloads",
		func(body string) {
			_, err := boot.ParseWorldTime([]byte(body))
			Expect(err).To(MatchError(boot.ErrClockSync))
		},
		Entry("not json", "<html>"),
		Entry("no field", `{"utc_offset":"+00:00"}`),
		Entry("bad time", `{"datetime":"yesterday"}`),
	)
})

var _ = Describe("PrettyMAC", func() {
	It("joins lowercase hex pairs with dashes", func() {
		Expect(boot.PrettyMAC([]byte{0xde, 0xad, 0x0b, 0xef, 0x00, 0x01})).To(Equal("de-ad-0b-ef-00-01"))
	})
})

var _ = Describe("WebClient", func() {
	It("returns status and body", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}))
		defer srv.Close()

		resp, err := boot.NewWebClient(time.Second).Get(context.Background(), srv.URL)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusTeapot))
		Expect(string(resp.Body)).To(Equal("short and stout"))
	})
})
