package clientware_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/ortgo/clientware"
	"github.com/sabouaram/ortgo/metrics"
	"github.com/sabouaram/ortgo/ort"
)

var _ = Describe("Stack", func() {
	It("reconnects and records metrics for a working transport", func() {
		var dials int64
		hist := metrics.New()

		transport := ort.FactoryFunc(func(ctx context.Context) (ort.Caller, error) {
			atomic.AddInt64(&dials, 1)
			return ort.CallerFunc(func(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
				return ort.Reply{Data: make([]byte, spec.ResponseSize)}, nil
			}), nil
		})

		factory := clientware.Stack(transport, clientware.StackConfig{
			RequestTimeout: time.Second,
			Histogram:      hist,
		})

		caller, err := factory.Dial(context.Background())
		Expect(err).ToNot(HaveOccurred())

		reply, err := caller.Ort(context.Background(), ort.Spec{ResponseSize: 8})
		Expect(err).ToNot(HaveOccurred())
		Expect(reply.Data).To(HaveLen(8))
		Expect(atomic.LoadInt64(&dials)).To(Equal(int64(1)))
		Expect(hist.Snapshot().Count).To(Equal(int64(1)))
	})

	It("rebuilds the inner connection after a dial failure", func() {
		var attempt int64
		transport := ort.FactoryFunc(func(ctx context.Context) (ort.Caller, error) {
			n := atomic.AddInt64(&attempt, 1)
			if n == 1 {
				return nil, errors.New("boom")
			}
			return ort.CallerFunc(func(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
				return ort.Reply{}, nil
			}), nil
		})

		factory := clientware.Stack(transport, clientware.StackConfig{
			RequestTimeout: time.Second,
			Reconnect:      clientware.ReconnectConfig{InitialBackoff: 10 * time.Millisecond, MaxBackoff: 20 * time.Millisecond},
		})

		caller, err := factory.Dial(context.Background())
		Expect(err).ToNot(HaveOccurred())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, err = caller.Ort(ctx, ort.Spec{})
		Expect(err).ToNot(HaveOccurred())
		Expect(atomic.LoadInt64(&attempt)).To(Equal(int64(2)))
	})
})
