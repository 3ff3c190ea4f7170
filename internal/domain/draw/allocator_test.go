package draw

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"
)

func TestAllocateExtras(t *testing.T) {
	Convey("Given the parity allocator", t, func() {
		Convey("When r is zero and every group is even under q", func() {
			k, ok := AllocateExtras([]GroupSize{{"A", 4}, {"B", 2}}, 2, 0)

			Convey("Then nobody gets an extra match", func() {
				So(ok, ShouldBeTrue)
				So(k, ShouldResemble, map[string]int{"A": 0, "B": 0})
			})
		})

		Convey("When q is odd and groups have odd size", func() {
			k, ok := AllocateExtras([]GroupSize{{"A", 3}, {"B", 3}}, 1, 2)

			Convey("Then each group takes an odd share", func() {
				So(ok, ShouldBeTrue)
				So(k, ShouldResemble, map[string]int{"A": 1, "B": 1})
			})
		})

		Convey("When several combinations reach r", func() {
			k, ok := AllocateExtras([]GroupSize{{"A", 3}, {"B", 2}}, 0, 4)

			Convey("Then the first witness in ascending order is kept", func() {
				So(ok, ShouldBeTrue)
				So(k, ShouldResemble, map[string]int{"A": 2, "B": 2})
			})
		})

		Convey("When parity forces more extras than r allows", func() {
			_, ok := AllocateExtras([]GroupSize{{"A", 1}, {"B", 1}}, 1, 0)

			Convey("Then it reports infeasibility", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When odd groups cannot reach an even total", func() {
			_, ok := AllocateExtras([]GroupSize{{"A", 3}, {"B", 3}}, 1, 0)

			Convey("Then it reports infeasibility", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When there are no groups", func() {
			k, ok := AllocateExtras(nil, 3, 0)

			Convey("Then only r=0 is feasible", func() {
				So(ok, ShouldBeTrue)
				So(k, ShouldBeEmpty)
				_, ok = AllocateExtras(nil, 3, 1)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When r is negative", func() {
			_, ok := AllocateExtras([]GroupSize{{"A", 2}}, 1, -1)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestAllocateExtrasSatisfiesConstraints(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		sizes := make([]GroupSize, 1+rng.Intn(5))
		n := 0
		for j := range sizes {
			sizes[j] = GroupSize{Name: string(rune('A' + j)), Size: rng.Intn(7)}
			n += sizes[j].Size
		}
		q := rng.Intn(6)
		r := 0
		if n > 0 {
			r = rng.Intn(n)
		}

		k, ok := AllocateExtras(sizes, q, r)
		if !ok {
			continue
		}
		sum := 0
		for _, g := range sizes {
			kg := k[g.Name]
			require.GreaterOrEqual(t, kg, 0)
			require.LessOrEqual(t, kg, g.Size)
			require.Equal(t, (q*g.Size)%2, kg%2, "group %s parity", g.Name)
			require.Zero(t, (q*g.Size+kg)%2)
			sum += kg
		}
		require.Equal(t, r, sum)
	}
}

func TestFallbackExtras(t *testing.T) {
	Convey("Given the fallback distribution", t, func() {
		Convey("When groups have room", func() {
			k := fallbackExtras([]GroupSize{{"A", 2}, {"B", 3}}, 4)

			Convey("Then groups are filled greedily in order", func() {
				So(k, ShouldResemble, map[string]int{"A": 2, "B": 2})
			})
		})

		Convey("When r is zero", func() {
			k := fallbackExtras([]GroupSize{{"A", 1}, {"B", 1}}, 0)
			So(k, ShouldResemble, map[string]int{"A": 0, "B": 0})
		})

		Convey("When r exceeds every group's capacity", func() {
			k := fallbackExtras([]GroupSize{{"A", 2}, {"B", 3}}, 7)

			Convey("Then it stops at full groups instead of spinning", func() {
				So(k, ShouldResemble, map[string]int{"A": 2, "B": 3})
			})
		})
	})
}
