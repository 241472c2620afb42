package prompts

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRender(t *testing.T) {
	Convey("Render 填充模板", t, func() {
		Convey("角色描述", func() {
			got, err := Render(CharacterDescription, map[string]string{"character": "Mario"})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "Give a detailed physical description of the character Mario in 50 words.")
		})

		Convey("主体与场景", func() {
			got, err := Render(SubjectWithSetting, map[string]string{"subject": "a plumber", "setting": "a castle"})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "Create a detailed physical description of the following subject and setting in 100 words.\n\nSubject: a plumber\n\nSetting: a castle\n")
		})

		Convey("native 场景要求模型自行选择场景", func() {
			got, err := Render(SubjectNativeSetting, map[string]string{"character": "a plumber"})
			So(err, ShouldBeNil)
			So(got, ShouldContainSubstring, "appropriate setting")
			So(got, ShouldContainSubstring, "Subject: a plumber")
		})

		Convey("风格与最终提示词", func() {
			got, err := Render(StyleSummary, map[string]string{"style": "watercolor"})
			So(err, ShouldBeNil)
			So(got, ShouldEndWith, "artistic style: watercolor")

			got, err = Render(FinalImagePrompt, map[string]string{"content": "C", "style": "S"})
			So(err, ShouldBeNil)
			So(got, ShouldContainSubstring, "Image content: C\n\nImage Style: S\n")
		})

		Convey("简化模式直接拼接", func() {
			got, err := Render(SimplifiedImagePrompt, map[string]string{"scene_details": "scene", "style": "style"})
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "scene\n\nStyle: style")
		})

		Convey("缺少字段时报错，不输出占位符", func() {
			got, err := Render(SubjectWithSetting, map[string]string{"subject": "a plumber"})
			So(errors.Is(err, ErrMissingField), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "setting")
			So(got, ShouldBeEmpty)

			_, err = Render(CharacterDescription, nil)
			So(errors.Is(err, ErrMissingField), ShouldBeTrue)
		})

		Convey("未知模板", func() {
			_, err := Render("nope", map[string]string{})
			So(errors.Is(err, ErrUnknownTemplate), ShouldBeTrue)
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Lookup 返回 max_tokens 约定值", t, func() {
		cases := map[string]int{
			string(CharacterDescription):  250,
			string(SubjectWithSetting):    500,
			string(SubjectNativeSetting):  500,
			string(StyleSummary):          150,
			string(FinalImagePrompt):      700,
			string(SimplifiedImagePrompt): 0,
		}
		for _, id := range IDs() {
			meta, err := Lookup(id)
			So(err, ShouldBeNil)
			So(meta.MaxTokens, ShouldEqual, cases[string(id)])
		}
		So(IDs(), ShouldHaveLength, len(cases))

		Convey("返回的字段列表是副本", func() {
			meta, _ := Lookup(SubjectWithSetting)
			meta.Fields[0] = "mutated"
			again, _ := Lookup(SubjectWithSetting)
			So(again.Fields[0], ShouldEqual, "subject")
		})
	})
}
