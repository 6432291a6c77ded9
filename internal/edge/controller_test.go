package edge_test

import (
	"errors"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tupyy/editor-heartbeat/internal/edge"
	"github.com/tupyy/editor-heartbeat/internal/entity"
	"github.com/tupyy/editor-heartbeat/internal/events"
	"github.com/tupyy/editor-heartbeat/internal/heartbeat"
	"github.com/tupyy/editor-heartbeat/internal/metrics"
	"github.com/tupyy/editor-heartbeat/internal/scheduler"
	"github.com/tupyy/editor-heartbeat/internal/settings"
)

type staticBranch string

func (s staticBranch) CurrentBranch() string {
	return string(s)
}

// pending returns a future resolved only when the returned channel is written.
func pending() (*scheduler.Future[entity.HeartbeatResult], chan entity.HeartbeatResult) {
	ch := make(chan entity.HeartbeatResult, 1)
	return scheduler.NewFuture(ch), ch
}

func acknowledged(hb entity.Heartbeat) *scheduler.Future[entity.HeartbeatResult] {
	return scheduler.NewResolvedFuture(entity.HeartbeatResult{
		Value: entity.HeartbeatResponse{ID: "id", Entity: hb.Entity, Type: hb.Type, Time: float64(hb.Time)},
	})
}

var _ = Describe("controller", func() {
	var (
		mockCtrl   *gomock.Controller
		mockClient *edge.MockClient
		s          *settings.Memory
		now        time.Time
		controller *edge.Controller
		creds      = entity.Credentials{BaseURL: "https://hackatime.example", APIKey: "key"}
	)

	// ackPost expects one heartbeat and acknowledges it immediately.
	ackPost := func() *gomock.Call {
		return mockClient.EXPECT().PostHeartbeat(gomock.Any(), gomock.Any(), creds).
			DoAndReturn(func(_ interface{}, hb entity.Heartbeat, _ entity.Credentials) *scheduler.Future[entity.HeartbeatResult] {
				return acknowledged(hb)
			})
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockClient = edge.NewMockClient(mockCtrl)

		s = settings.NewMemory("MyGame")
		s.SetBool(settings.Enabled, true)
		s.SetString(settings.BaseURL, creds.BaseURL)
		s.SetString(settings.ApiKey, creds.APIKey)

		now = time.Unix(1000, 0)
		identity := heartbeat.Identity{Editor: "Unity", Language: "Unity", OperatingSystem: "Linux", Machine: "box"}
		builder := heartbeat.NewBuilderWithClock(s, staticBranch("main"), identity, func() time.Time { return now })

		controller = edge.New(mockClient, s, builder)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("updates the last sent heartbeat on completion", func() {
		future, ch := pending()
		mockClient.EXPECT().PostHeartbeat(gomock.Any(), gomock.Any(), creds).Return(future)

		Expect(controller.SendHeartbeat("/a", false)).To(BeTrue())
		Expect(controller.LastSent()).To(Equal(entity.HeartbeatResponse{}))

		controller.Tick()
		Expect(controller.Pending()).To(Equal(1))
		Expect(controller.LastSent()).To(Equal(entity.HeartbeatResponse{}))

		ch <- entity.HeartbeatResult{Value: entity.HeartbeatResponse{ID: "1", Entity: "/a", Type: "app", Time: 1000}}
		Eventually(future.Resolved).Should(BeTrue())

		controller.Tick()
		Expect(controller.Pending()).To(Equal(0))
		Expect(controller.LastSent()).To(Equal(entity.HeartbeatResponse{ID: "1", Entity: "/a", Type: "app", Time: 1000}))
	})

	It("builds the heartbeat from the context", func() {
		mockClient.EXPECT().PostHeartbeat(gomock.Any(), entity.Heartbeat{
			Entity:          entity.UnsavedEntity,
			Type:            "app",
			Project:         "MyGame",
			Branch:          "main",
			Language:        "Unity",
			IsWrite:         true,
			Editor:          "Unity",
			OperatingSystem: "Linux",
			Machine:         "box",
			Time:            1000,
		}, creds).Return(acknowledged(entity.Heartbeat{}))

		Expect(controller.SendHeartbeat("", true)).To(BeTrue())
	})

	Context("throttle", func() {
		BeforeEach(func() {
			ackPost()
			controller.SendHeartbeat("/a", false)
			controller.Tick()
			Expect(controller.LastSent().Time).To(Equal(float64(1000)))
		})

		It("drops a heartbeat of the same entity within the buffer", func() {
			throttled := testutil.ToFloat64(metrics.HeartbeatsThrottled)
			before := controller.LastSent()

			now = time.Unix(1050, 0)
			Expect(controller.SendHeartbeat("/a", false)).To(BeFalse())
			Expect(controller.Pending()).To(Equal(0))
			Expect(controller.LastSent()).To(Equal(before))
			Expect(testutil.ToFloat64(metrics.HeartbeatsThrottled)).To(Equal(throttled + 1))
		})

		It("sends when the entity changed", func() {
			ackPost()

			now = time.Unix(1050, 0)
			Expect(controller.SendHeartbeat("/b", false)).To(BeTrue())
			controller.Tick()
			Expect(controller.LastSent().Entity).To(Equal("/b"))
		})

		It("sends when the buffer elapsed", func() {
			ackPost()

			now = time.Unix(1130, 0)
			Expect(controller.SendHeartbeat("/a", false)).To(BeTrue())
			controller.Tick()
			Expect(controller.LastSent().Time).To(Equal(float64(1130)))
		})

		It("always sends a save", func() {
			ackPost()

			now = time.Unix(1005, 0)
			Expect(controller.SendHeartbeat("/a", true)).To(BeTrue())
		})
	})

	It("keeps the last sent heartbeat on error", func() {
		ackPost()
		controller.SendHeartbeat("/a", false)
		controller.Tick()
		before := controller.LastSent()

		failed := testutil.ToFloat64(metrics.HeartbeatsFailed)
		mockClient.EXPECT().PostHeartbeat(gomock.Any(), gomock.Any(), creds).
			Return(scheduler.NewResolvedFuture(entity.HeartbeatResult{Error: errors.New("invalid api key")}))

		now = time.Unix(1010, 0)
		Expect(controller.SendHeartbeat("/b", false)).To(BeTrue())
		controller.Tick()

		Expect(controller.LastSent()).To(Equal(before))
		Expect(testutil.ToFloat64(metrics.HeartbeatsFailed)).To(Equal(failed + 1))

		// the next eligible trigger tries again
		ackPost()
		Expect(controller.SendHeartbeat("/b", false)).To(BeTrue())
		controller.Tick()
		Expect(controller.LastSent().Entity).To(Equal("/b"))
	})

	It("does nothing when disabled", func() {
		s.SetBool(settings.Enabled, false)

		Expect(controller.SendHeartbeat("/a", true)).To(BeFalse())
		Expect(controller.Pending()).To(Equal(0))
	})

	It("fires the callback once", func() {
		future, ch := pending()
		mockClient.EXPECT().PostHeartbeat(gomock.Any(), gomock.Any(), creds).Return(future)
		controller.SendHeartbeat("/a", false)

		for i := 0; i < 10; i++ {
			controller.Tick()
			Expect(controller.Pending()).To(Equal(1))
		}

		sent := testutil.ToFloat64(metrics.HeartbeatsSent)
		ch <- entity.HeartbeatResult{Value: entity.HeartbeatResponse{ID: "1", Entity: "/a", Time: 1000}}
		Eventually(future.Resolved).Should(BeTrue())

		for i := 0; i < 10; i++ {
			controller.Tick()
		}
		Expect(testutil.ToFloat64(metrics.HeartbeatsSent)).To(Equal(sent + 1))
	})

	Context("events", func() {
		var table *events.Table

		BeforeEach(func() {
			table = events.NewTable()
			controller.Link(table)
		})

		It("subscribes to every event", func() {
			for _, k := range events.Kinds() {
				Expect(table.Len(k)).To(Equal(1), k.String())
			}
		})

		It("relinks without duplicates", func() {
			controller.Link(table)
			controller.Relink(table)
			for _, k := range events.Kinds() {
				Expect(table.Len(k)).To(Equal(1), k.String())
			}

			controller.Unlink(table)
			for _, k := range events.Kinds() {
				Expect(table.Len(k)).To(Equal(0), k.String())
			}
		})

		It("forces scene saved", func() {
			ackPost()
			table.Emit(events.Event{Kind: events.SceneOpened, Path: "/a"})
			table.Emit(events.Event{Kind: events.Update})

			mockClient.EXPECT().PostHeartbeat(gomock.Any(), gomock.Any(), creds).
				DoAndReturn(func(_ interface{}, hb entity.Heartbeat, _ entity.Credentials) *scheduler.Future[entity.HeartbeatResult] {
					Expect(hb.IsWrite).To(BeTrue())
					Expect(hb.Entity).To(Equal("/a"))
					return acknowledged(hb)
				})

			now = time.Unix(1001, 0)
			// throttled
			table.Emit(events.Event{Kind: events.HierarchyChanged, Path: "/a"})
			table.Emit(events.Event{Kind: events.PlayModeChanged, Path: "/a"})
			// forced
			table.Emit(events.Event{Kind: events.SceneSaved, Path: "/a"})
			table.Emit(events.Event{Kind: events.Update})

			Expect(controller.LastSent().Time).To(Equal(float64(1001)))
		})

		It("treats a missing scene as unsaved", func() {
			mockClient.EXPECT().PostHeartbeat(gomock.Any(), gomock.Any(), creds).
				DoAndReturn(func(_ interface{}, hb entity.Heartbeat, _ entity.Credentials) *scheduler.Future[entity.HeartbeatResult] {
					Expect(hb.Entity).To(Equal(entity.UnsavedEntity))
					Expect(hb.IsWrite).To(BeFalse())
					return acknowledged(hb)
				})

			table.Emit(events.Event{Kind: events.SceneCreated})
		})
	})
})
