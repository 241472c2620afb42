package chartools

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestScrubName(t *testing.T) {
	Convey("ScrubName 替换角色名称", t, func() {
		Convey("先替换全名再替换片段，不会重复替换", func() {
			got := ScrubName("Mario Mario is a plumber. Mario wears red.", "Mario Mario", "REDACTED")
			So(got, ShouldEqual, "REDACTED is a plumber. REDACTED wears red.")
		})

		Convey("单独出现的名或姓也会被替换", func() {
			got := ScrubName("Luke Skywalker trained hard. Luke met Yoda. Skywalker won.", "Luke Skywalker", "the hero")
			So(got, ShouldEqual, "the hero trained hard. the hero met Yoda. the hero won.")
		})

		Convey("字面子串替换，不考虑单词边界", func() {
			got := ScrubName("Marion met Mario.", "Mario", "X")
			So(got, ShouldEqual, "Xn met X.")
		})

		Convey("不包含名称时保持不变（幂等）", func() {
			text := "a plumber wearing red overalls."
			So(ScrubName(text, "Mario", "a plumber"), ShouldEqual, text)

			once := ScrubName("Mario jumps.", "Mario", "REDACTED")
			So(ScrubName(once, "Mario", "REDACTED"), ShouldEqual, once)
		})

		Convey("连续空格产生的空片段被忽略", func() {
			got := ScrubName("Mario and Luigi", "Mario  Luigi", "X")
			So(got, ShouldEqual, "X and X")
		})

		Convey("空名称不做替换", func() {
			So(ScrubName("anything", "", "X"), ShouldEqual, "anything")
		})
	})
}
