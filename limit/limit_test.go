package limit_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liblim "github.com/sabouaram/ortgo/limit"
)

var _ = Describe("Fixed concurrency limiter", func() {
	It("never allows more than N concurrent holders", func() {
		lim := liblim.Fixed(4)
		var (
			inFlight int32
			maxSeen  int32
			wg       sync.WaitGroup
		)

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h, err := lim.Acquire(context.Background())
				Expect(err).ToNot(HaveOccurred())
				defer h.Release()

				n := atomic.AddInt32(&inFlight, 1)
				for {
					cur := atomic.LoadInt32(&maxSeen)
					if n <= cur || atomic.CompareAndSwapInt32(&maxSeen, cur, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
			}()
		}

		wg.Wait()
		Expect(atomic.LoadInt32(&maxSeen)).To(BeNumerically("<=", 4))
	})
})

var _ = Describe("Countdown", func() {
	It("yields each sequence number exactly once across goroutines", func() {
		cd := liblim.NewCountdown(100)
		seen := make([]int32, 100)
		var wg sync.WaitGroup

		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					v, ok := cd.Advance()
					if !ok {
						return
					}
					atomic.AddInt32(&seen[v], 1)
				}
			}()
		}

		wg.Wait()

		for _, c := range seen {
			Expect(c).To(Equal(int32(1)))
		}
	})

	It("is unbounded when bound <= 0", func() {
		cd := liblim.NewCountdown(0)
		for i := 0; i < 1000; i++ {
			_, ok := cd.Advance()
			Expect(ok).To(BeTrue())
		}
	})
})

var _ = Describe("Composite limiter", func() {
	It("releases earlier permits if a later acquisition fails", func() {
		a := liblim.Fixed(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		blocked := liblim.Fixed(1)
		h, _ := blocked.Acquire(context.Background())
		defer h.Release()

		comp := liblim.Composite(a, blocked)
		_, err := comp.Acquire(ctx)
		Expect(err).To(HaveOccurred())

		h2, err := a.Acquire(context.Background())
		Expect(err).ToNot(HaveOccurred())
		h2.Release()
	})
})
