package logger_test

import (
	"bytes"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/sabouaram/ortgo/logger"
)

var _ = Describe("New", func() {
	It("writes JSON entries with the configured component field", func() {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: "debug", Output: &buf, Component: "bench"})

		log.Info("hello")

		var entry map[string]interface{}
		Expect(json.Unmarshal(buf.Bytes(), &entry)).To(Succeed())
		Expect(entry["component"]).To(Equal("bench"))
		Expect(entry["msg"]).To(Equal("hello"))
	})

	It("falls back to info level on an unparsable level string", func() {
		var buf bytes.Buffer
		log := logger.New(logger.Options{Level: "not-a-level", Output: &buf})
		Expect(log.GetLevel()).To(Equal(logrus.InfoLevel))
	})
})
