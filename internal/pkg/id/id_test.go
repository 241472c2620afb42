package id

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("New 生成合法且不重复的 UUID", t, func() {
		a, b := New(), New()
		So(IsValid(a), ShouldBeTrue)
		So(IsValid(b), ShouldBeTrue)
		So(a, ShouldNotEqual, b)
		So(IsValid("run-1"), ShouldBeFalse)
	})
}
