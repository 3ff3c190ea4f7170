package draw

import (
	"errors"
	"testing"

	"github.com/okian/fairdraw/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func degrees(ms []model.Match) map[string]int {
	d := map[string]int{}
	for _, m := range ms {
		d[m.A]++
		d[m.B]++
	}
	return d
}

func TestRealizeGroup(t *testing.T) {
	Convey("Given a group of four with two matches each", t, func() {
		g := model.Group{Name: "A", Participants: []string{"a1", "a2", "a3", "a4"}}
		targets := Targets{"a1": 2, "a2": 2, "a3": 2, "a4": 2}

		ms, err := RealizeGroup(g, targets)

		Convey("Then the highest remaining degree is always paired first", func() {
			So(err, ShouldBeNil)
			So(ms, ShouldResemble, []model.Match{
				{Group: "A", A: "a1", B: "a2"},
				{Group: "A", A: "a1", B: "a3"},
				{Group: "A", A: "a4", B: "a2"},
				{Group: "A", A: "a4", B: "a3"},
			})
		})
	})

	Convey("Given a pair that must meet three times", t, func() {
		g := model.Group{Name: "B", Participants: []string{"x", "y"}}
		ms, err := RealizeGroup(g, Targets{"x": 3, "y": 3})

		Convey("Then the pairing repeats", func() {
			So(err, ShouldBeNil)
			So(ms, ShouldHaveLength, 3)
			for _, m := range ms {
				So(m, ShouldResemble, model.Match{Group: "B", A: "x", B: "y"})
			}
		})
	})

	Convey("Given uneven targets", t, func() {
		g := model.Group{Name: "C", Participants: []string{"a", "b", "c", "d", "e"}}
		targets := Targets{"a": 3, "b": 1, "c": 1, "d": 1, "e": 0}
		ms, err := RealizeGroup(g, targets)

		Convey("Then every degree is met exactly and nobody plays themselves", func() {
			So(err, ShouldBeNil)
			So(ms, ShouldHaveLength, 3)
			d := degrees(ms)
			for name, want := range targets {
				So(d[name], ShouldEqual, want)
			}
			for _, m := range ms {
				So(m.A, ShouldNotEqual, m.B)
				So(m.Group, ShouldEqual, "C")
			}
		})
	})

	Convey("Given a degree sequence with a dominant member", t, func() {
		g := model.Group{Name: "D", Participants: []string{"a", "b"}}
		_, err := RealizeGroup(g, Targets{"a": 3, "b": 1})

		Convey("Then realization fails as an invariant breach", func() {
			So(errors.Is(err, ErrRealization), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `group "D"`)
		})
	})

	Convey("Given an odd degree sum", t, func() {
		g := model.Group{Name: "E", Participants: []string{"a", "b"}}
		_, err := RealizeGroup(g, Targets{"a": 1, "b": 0})
		So(errors.Is(err, ErrOddDegreeSum), ShouldBeTrue)
	})

	Convey("Given a negative target", t, func() {
		g := model.Group{Name: "F", Participants: []string{"a", "b"}}
		_, err := RealizeGroup(g, Targets{"a": -1, "b": 1})
		So(errors.Is(err, ErrNegativeTarget), ShouldBeTrue)
	})

	Convey("Given all-zero targets", t, func() {
		g := model.Group{Name: "G", Participants: []string{"a", "b"}}
		ms, err := RealizeGroup(g, Targets{})
		So(err, ShouldBeNil)
		So(ms, ShouldBeEmpty)
	})
}
