package grpc_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/ortgo/ort"
	libgrpc "github.com/sabouaram/ortgo/transport/grpc"
)

var _ = Describe("Server", func() {
	It("maps an Error outcome to a gRPC status without calling the impl", func() {
		called := false
		impl := ort.CallerFunc(func(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
			called = true
			return ort.Reply{}, nil
		})

		srv := libgrpc.NewServer(impl)
		_, err := srv.Get(context.Background(), &libgrpc.ResponseSpec{
			Error: &libgrpc.ResponseSpecError{Code: 5, Message: "not found"},
		})

		Expect(err).To(HaveOccurred())
		Expect(called).To(BeFalse())
	})

	It("forwards a Success outcome as a Spec and returns the reply data", func() {
		impl := ort.CallerFunc(func(ctx context.Context, spec ort.Spec) (ort.Reply, error) {
			Expect(spec.ResponseSize).To(Equal(uint32(16)))
			return ort.Reply{Data: make([]byte, 16)}, nil
		})

		srv := libgrpc.NewServer(impl)
		reply, err := srv.Get(context.Background(), &libgrpc.ResponseSpec{
			Success: &libgrpc.ResponseSpecSuccess{Size: 16},
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(reply.Data).To(HaveLen(16))
	})
})
