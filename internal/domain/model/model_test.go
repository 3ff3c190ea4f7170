package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/fairdraw/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMatch(t *testing.T) {
	convey.Convey("Given a match between two players", t, func() {
		m := model.Match{Group: "A", A: "Anna (IFK)", B: "Bo (AIK)"}

		convey.Convey("Then it involves exactly its two players", func() {
			convey.So(m.Involves("Anna (IFK)"), convey.ShouldBeTrue)
			convey.So(m.Involves("Bo (AIK)"), convey.ShouldBeTrue)
			convey.So(m.Involves("Cid (IFK)"), convey.ShouldBeFalse)
		})

		convey.Convey("Then overlap is detected through either side", func() {
			convey.So(m.Overlaps(model.Match{Group: "A", A: "Cid", B: "Bo (AIK)"}), convey.ShouldBeTrue)
			convey.So(m.Overlaps(model.Match{Group: "A", A: "Cid", B: "Dan"}), convey.ShouldBeFalse)
		})

		convey.Convey("Then the key ignores side order", func() {
			flipped := model.Match{Group: "A", A: "Bo (AIK)", B: "Anna (IFK)"}
			convey.So(m.Key(), convey.ShouldEqual, flipped.Key())
			convey.So(m.Key(), convey.ShouldNotEqual, model.Match{Group: "B", A: m.A, B: m.B}.Key())
		})
	})
}

func TestRoster(t *testing.T) {
	convey.Convey("Given a roster of two groups", t, func() {
		r := model.Roster{
			{Name: "A", Participants: []string{"p1", "p2", "p3"}},
			{Name: "B", Participants: []string{"q1", "q2"}},
		}

		convey.Convey("Then participants keep roster order", func() {
			convey.So(r.Len(), convey.ShouldEqual, 5)
			convey.So(r.Participants(), convey.ShouldResemble, []string{"p1", "p2", "p3", "q1", "q2"})
			convey.So(r.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When a participant appears in two groups", func() {
			r[1].Participants = append(r[1].Participants, "p2")

			convey.Convey("Then validation reports a duplicate", func() {
				err := r.Validate()
				convey.So(errors.Is(err, model.ErrDuplicateParticipant), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a group name repeats", func() {
			r = append(r, model.Group{Name: "A", Participants: []string{"z"}})

			convey.Convey("Then validation rejects the roster", func() {
				convey.So(errors.Is(r.Validate(), model.ErrInvalidRoster), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a label is blank", func() {
			r[0].Participants[1] = "  "

			convey.Convey("Then validation rejects the roster", func() {
				convey.So(errors.Is(r.Validate(), model.ErrInvalidRoster), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given an empty roster", t, func() {
		var r model.Roster

		convey.Convey("Then it is valid but holds nobody", func() {
			convey.So(r.Validate(), convey.ShouldBeNil)
			convey.So(r.Len(), convey.ShouldEqual, 0)
			convey.So(r.Participants(), convey.ShouldBeEmpty)
		})
	})
}

func TestDrawSummary(t *testing.T) {
	convey.Convey("Given a draw", t, func() {
		d := model.Draw{
			ID:          "id-1",
			TargetTotal: 3,
			Counts:      map[string]int{"a": 2, "b": 2, "c": 2},
			Groups:      []model.GroupSummary{{Group: "A", Participants: 3}},
		}

		convey.Convey("Then the summary carries the list fields", func() {
			s := d.Summary()
			convey.So(s.ID, convey.ShouldEqual, "id-1")
			convey.So(s.Participants, convey.ShouldEqual, 3)
			convey.So(s.Groups, convey.ShouldEqual, 1)
			convey.So(s.TargetTotal, convey.ShouldEqual, 3)
		})
	})
}
