package keyword_test

import (
	"testing"

	keyword "github.com/okian/mingle/internal/domain/keyword"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTokenize(t *testing.T) {
	Convey("Given free text", t, func() {
		Convey("When tokenizing a sentence", func() {
			set := keyword.Tokenize("Soccer is a popular team sport!")

			Convey("Then tokens should be lowercase and longer than two characters", func() {
				So(set, ShouldContainKey, "soccer")
				So(set, ShouldContainKey, "popular")
				So(set, ShouldContainKey, "team")
				So(set, ShouldContainKey, "sport")
				So(set, ShouldNotContainKey, "is")
				So(set, ShouldNotContainKey, "a")
			})
		})

		Convey("When tokenizing text with punctuation and digits", func() {
			set := keyword.Tokenize("DJ-ing, 3D-printing & wood_working")

			Convey("Then it should split on non-word runs only", func() {
				// Underscore is a word character, hyphen is not.
				So(set, ShouldContainKey, "ing")
				So(set, ShouldContainKey, "printing")
				So(set, ShouldContainKey, "wood_working")
				So(set, ShouldNotContainKey, "dj")
			})
		})

		Convey("When tokenizing empty text", func() {
			So(keyword.Tokenize(""), ShouldBeEmpty)
		})

		Convey("Then tokenization should be idempotent", func() {
			text := "Fencing is a competitive sport involving swordplay"
			So(keyword.Tokenize(text), ShouldResemble, keyword.Tokenize(text))
		})
	})
}

func TestTokenizeAll(t *testing.T) {
	Convey("Given several texts", t, func() {
		set := keyword.TokenizeAll("soccer match", "soccer training", "")

		Convey("Then the union should contain each token once", func() {
			So(set, ShouldContainKey, "soccer")
			So(set, ShouldContainKey, "match")
			So(set, ShouldContainKey, "training")
			So(len(set), ShouldEqual, 3)
		})
	})
}

func TestJaccard(t *testing.T) {
	Convey("Given keyword sets", t, func() {
		Convey("When both sets are empty", func() {
			So(keyword.Jaccard(keyword.Set{}, keyword.Set{}), ShouldEqual, 0.0)
		})

		Convey("When comparing a non-empty set with itself", func() {
			set := keyword.Tokenize("growing and cultivating plants")
			So(keyword.Jaccard(set, set), ShouldEqual, 1.0)
		})

		Convey("When the sets are disjoint", func() {
			a := keyword.Tokenize("soccer teamwork strategy")
			b := keyword.Tokenize("knitting yarn needles")
			So(keyword.Jaccard(a, b), ShouldEqual, 0.0)
		})

		Convey("When the sets partially overlap", func() {
			a := keyword.Set{"team": {}, "sport": {}, "ball": {}}
			b := keyword.Set{"team": {}, "sport": {}, "bat": {}}

			Convey("Then the score should be intersection over union", func() {
				So(keyword.Jaccard(a, b), ShouldAlmostEqual, 2.0/4.0, 1e-12)
			})

			Convey("And the score should be symmetric", func() {
				So(keyword.Jaccard(a, b), ShouldEqual, keyword.Jaccard(b, a))
			})
		})
	})
}
