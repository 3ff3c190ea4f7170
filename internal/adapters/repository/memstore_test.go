package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	repository "github.com/okian/fairdraw/internal/adapters/repository"
	"github.com/okian/fairdraw/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func drawWithID(id string) model.Draw {
	return model.Draw{ID: id, TargetTotal: 1, Counts: map[string]int{"a": 1, "b": 1}}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemStore()

		Convey("When getting an unknown draw", func() {
			_, err := s.Get(ctx, "missing")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When saving a draw without an ID", func() {
			err := s.Save(ctx, model.Draw{})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, repository.ErrInvalidID), ShouldBeTrue)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When saving draws", func() {
			So(s.Save(ctx, drawWithID("d1")), ShouldBeNil)
			So(s.Save(ctx, drawWithID("d2")), ShouldBeNil)

			Convey("Then they can be fetched back", func() {
				d, err := s.Get(ctx, "d1")
				So(err, ShouldBeNil)
				So(d.ID, ShouldEqual, "d1")
				So(s.Count(ctx), ShouldEqual, 2)
			})

			Convey("Then the list is newest first", func() {
				list, err := s.List(ctx, 0)
				So(err, ShouldBeNil)
				So(list, ShouldHaveLength, 2)
				So(list[0].ID, ShouldEqual, "d2")
				So(list[1].ID, ShouldEqual, "d1")
				So(list[0].Participants, ShouldEqual, 2)

				limited, err := s.List(ctx, 1)
				So(err, ShouldBeNil)
				So(limited, ShouldHaveLength, 1)
				So(limited[0].ID, ShouldEqual, "d2")
			})

			Convey("Then saving an existing ID replaces it and makes it newest", func() {
				updated := drawWithID("d1")
				updated.TargetTotal = 9
				So(s.Save(ctx, updated), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 2)
				list, _ := s.List(ctx, 0)
				So(list[0].ID, ShouldEqual, "d1")
				So(list[0].TargetTotal, ShouldEqual, 9)
			})
		})
	})

	Convey("Given a store bounded to two draws", t, func() {
		s := repository.NewMemStore(repository.WithMaxDraws(2))
		for i := 1; i <= 3; i++ {
			So(s.Save(ctx, drawWithID(fmt.Sprintf("d%d", i))), ShouldBeNil)
		}

		Convey("Then the oldest draw is evicted", func() {
			So(s.Count(ctx), ShouldEqual, 2)
			_, err := s.Get(ctx, "d1")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			_, err = s.Get(ctx, "d3")
			So(err, ShouldBeNil)
		})
	})

	Convey("Given concurrent writers", t, func() {
		s := repository.NewMemStore(repository.WithMaxDraws(50))
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 20; i++ {
					_ = s.Save(ctx, drawWithID(fmt.Sprintf("w%d-%d", w, i)))
					_, _ = s.List(ctx, 5)
				}
			}(w)
		}
		wg.Wait()

		Convey("Then the bound holds", func() {
			So(s.Count(ctx), ShouldEqual, 50)
		})
	})
}
