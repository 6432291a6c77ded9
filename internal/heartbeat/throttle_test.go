package heartbeat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tupyy/editor-heartbeat/internal/entity"
	"github.com/tupyy/editor-heartbeat/internal/heartbeat"
)

var _ = Describe("throttle gate", func() {
	last := entity.HeartbeatResponse{ID: "1", Entity: "/a", Type: entity.HeartbeatType, Time: 1000}

	DescribeTable("decides whether to send",
		func(entityName string, t int64, forced bool, expected bool) {
			candidate := entity.Heartbeat{Entity: entityName, Time: t}
			Expect(heartbeat.ShouldSend(candidate, last, forced)).To(Equal(expected))
		},
		Entry("same entity within the buffer is dropped", "/a", int64(1050), false, false),
		Entry("entity changed is sent", "/b", int64(1050), false, true),
		Entry("buffer elapsed is sent", "/a", int64(1130), false, true),
		Entry("buffer boundary is sent", "/a", int64(1120), false, true),
		Entry("one second before the boundary is dropped", "/a", int64(1119), false, false),
		Entry("save overrides the buffer", "/a", int64(1005), true, true),
		Entry("save with entity changed is sent", "/b", int64(1005), true, true),
	)

	It("always accepts the first heartbeat", func() {
		candidate := entity.Heartbeat{Entity: "", Time: 1}
		Expect(heartbeat.ShouldSend(candidate, entity.HeartbeatResponse{}, false)).To(BeTrue())

		candidate = entity.Heartbeat{Entity: entity.UnsavedEntity, Time: 1}
		Expect(heartbeat.ShouldSend(candidate, entity.HeartbeatResponse{}, false)).To(BeTrue())

		candidate = entity.Heartbeat{Entity: entity.UnsavedEntity, Time: 1700000000}
		Expect(heartbeat.ShouldSend(candidate, entity.HeartbeatResponse{}, false)).To(BeTrue())
	})

	It("throttles once a heartbeat has been acknowledged at time zero", func() {
		l := entity.HeartbeatResponse{ID: "1", Entity: "", Time: 0}
		Expect(heartbeat.ShouldSend(entity.Heartbeat{Entity: "", Time: 1}, l, false)).To(BeFalse())
	})

	It("handles fractional server time", func() {
		l := entity.HeartbeatResponse{Entity: "/a", Time: 1000.5}
		Expect(heartbeat.ShouldSend(entity.Heartbeat{Entity: "/a", Time: 1120}, l, false)).To(BeFalse())
		Expect(heartbeat.ShouldSend(entity.Heartbeat{Entity: "/a", Time: 1121}, l, false)).To(BeTrue())
	})

	It("forced always accepts", func() {
		for _, t := range []int64{0, 999, 1000, 1001, 5000} {
			Expect(heartbeat.ShouldSend(entity.Heartbeat{Entity: "/a", Time: t}, last, true)).To(BeTrue())
		}
	})
})
