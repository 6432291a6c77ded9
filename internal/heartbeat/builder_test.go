package heartbeat_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tupyy/editor-heartbeat/internal/entity"
	"github.com/tupyy/editor-heartbeat/internal/heartbeat"
	"github.com/tupyy/editor-heartbeat/internal/settings"
)

type staticBranch struct {
	branch string
	calls  int
}

func (s *staticBranch) CurrentBranch() string {
	s.calls++
	return s.branch
}

var _ = Describe("heartbeat builder", func() {
	var (
		s        *settings.Memory
		branch   *staticBranch
		now      time.Time
		builder  *heartbeat.Builder
		identity = heartbeat.Identity{
			Editor:          "Unity",
			Language:        "Unity",
			OperatingSystem: heartbeat.LinuxFamily,
			Machine:         "workstation",
		}
	)

	BeforeEach(func() {
		s = settings.NewMemory("MyGame")
		branch = &staticBranch{branch: "develop"}
		now = time.Unix(1000, 0)
		builder = heartbeat.NewBuilderWithClock(s, branch, identity, func() time.Time { return now })
	})

	It("builds a heartbeat from the context", func() {
		hb := builder.Build("/project/Assets/Main.unity", true)

		Expect(hb).To(Equal(entity.Heartbeat{
			Entity:          "/project/Assets/Main.unity",
			Type:            "app",
			Project:         "MyGame",
			Branch:          "develop",
			Language:        "Unity",
			IsWrite:         true,
			Editor:          "Unity",
			OperatingSystem: "Linux",
			Machine:         "workstation",
			Time:            1000,
		}))
		Expect(branch.calls).To(Equal(1))
	})

	It("uses the unsaved placeholder for empty path", func() {
		hb := builder.Build("", false)
		Expect(hb.Entity).To(Equal("Unsaved Scene"))
		Expect(hb.IsWrite).To(BeFalse())
	})

	It("reads the project at build time", func() {
		s.SetString(settings.ActiveProject, "Other")
		Expect(builder.Build("/a", false).Project).To(Equal("Other"))
	})

	It("never goes back in time", func() {
		Expect(builder.Build("/a", false).Time).To(Equal(int64(1000)))

		now = time.Unix(900, 0)
		Expect(builder.Build("/a", false).Time).To(Equal(int64(1000)))

		now = time.Unix(1010, 0)
		Expect(builder.Build("/a", false).Time).To(Equal(int64(1010)))
	})
})

var _ = Describe("identity", func() {
	DescribeTable("os family",
		func(name, family string) {
			Expect(heartbeat.OSFamily(name)).To(Equal(family))
		},
		Entry("windows", "windows", "Windows"),
		Entry("windows version", "Windows 10  (10.0.19045) 64bit", "Windows"),
		Entry("linux", "linux", "Linux"),
		Entry("darwin", "darwin", "macOS"),
		Entry("mac os", "Mac OS X 13.1", "macOS"),
		Entry("freebsd", "freebsd", "Other"),
		Entry("empty", "", "Other"),
	)

	It("always has a machine name", func() {
		Expect(heartbeat.MachineName()).ToNot(BeEmpty())
	})
})
