package field_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldlab/internal/field"
)

var _ = Describe("Tracker", func() {
	var tracker *field.Tracker

	BeforeEach(func() {
		tracker = field.NewTracker()
	})

	Describe("adding charges", func() {
		It("assigns increasing ids and queues one add diff each", func() {
			a := tracker.Add(1, field.Vec2{X: 1})
			b := tracker.Add(-1, field.Vec2{Y: 1})

			Expect(b).To(BeNumerically(">", a))
			Expect(tracker.Len()).To(Equal(2))
			Expect(tracker.Pending()).To(Equal(2))

			diffs := tracker.Drain()
			Expect(diffs).To(HaveLen(2))
			Expect(diffs[0].Kind).To(Equal(field.DiffAdd))
			Expect(diffs[0].Charge).To(Equal(1.0))
			Expect(diffs[1].Charge).To(Equal(-1.0))
		})
	})

	Describe("moving charges", func() {
		It("queues a move diff carrying both endpoints", func() {
			id := tracker.Add(2, field.Vec2{X: 1, Y: 1})
			tracker.Drain()

			Expect(tracker.Move(id, field.Vec2{X: 3, Y: -1})).To(Succeed())

			diffs := tracker.Drain()
			Expect(diffs).To(HaveLen(1))
			Expect(diffs[0].Kind).To(Equal(field.DiffMove))
			Expect(diffs[0].From).To(Equal(field.Vec2{X: 1, Y: 1}))
			Expect(diffs[0].To).To(Equal(field.Vec2{X: 3, Y: -1}))

			c, ok := tracker.Get(id)
			Expect(ok).To(BeTrue())
			Expect(c.Pos).To(Equal(field.Vec2{X: 3, Y: -1}))
		})

		It("rejects unknown ids", func() {
			Expect(tracker.Move(42, field.Vec2{})).To(MatchError(field.ErrUnknownCharge))
		})
	})

	Describe("removing charges", func() {
		It("queues a remove diff at the last position", func() {
			id := tracker.Add(1, field.Vec2{X: 5})
			Expect(tracker.Move(id, field.Vec2{X: 7})).To(Succeed())
			tracker.Drain()

			Expect(tracker.Remove(id)).To(Succeed())
			Expect(tracker.Len()).To(BeZero())

			diffs := tracker.Drain()
			Expect(diffs).To(HaveLen(1))
			Expect(diffs[0].Kind).To(Equal(field.DiffRemove))
			Expect(diffs[0].From).To(Equal(field.Vec2{X: 7}))
		})

		It("does not reuse ids", func() {
			a := tracker.Add(1, field.Vec2{})
			Expect(tracker.Remove(a)).To(Succeed())
			b := tracker.Add(1, field.Vec2{})
			Expect(b).NotTo(Equal(a))
		})

		It("rejects unknown ids", func() {
			Expect(tracker.Remove(7)).To(MatchError(field.ErrUnknownCharge))
		})
	})

	Describe("the diff queue", func() {
		It("drains in recording order and empties", func() {
			a := tracker.Add(1, field.Vec2{})
			tracker.Add(-1, field.Vec2{X: 1})
			Expect(tracker.Move(a, field.Vec2{Y: 2})).To(Succeed())

			diffs := tracker.Drain()
			Expect(diffs).To(HaveLen(3))
			Expect(diffs[0].Kind).To(Equal(field.DiffAdd))
			Expect(diffs[1].Kind).To(Equal(field.DiffAdd))
			Expect(diffs[2].Kind).To(Equal(field.DiffMove))
			Expect(tracker.Pending()).To(BeZero())
			Expect(tracker.Drain()).To(BeEmpty())
		})

		It("clears without applying", func() {
			tracker.Add(1, field.Vec2{})
			tracker.Clear()
			Expect(tracker.Pending()).To(BeZero())
			Expect(tracker.Len()).To(Equal(1))
		})
	})

	Describe("rebuild diffs", func() {
		It("emits one add per live charge in insertion order", func() {
			a := tracker.Add(1, field.Vec2{X: 1})
			b := tracker.Add(-1, field.Vec2{X: 2})
			tracker.Add(0.5, field.Vec2{X: 3})
			Expect(tracker.Move(a, field.Vec2{X: 9})).To(Succeed())
			Expect(tracker.Remove(b)).To(Succeed())

			diffs := tracker.RebuildDiffs()
			Expect(diffs).To(HaveLen(2))
			for _, d := range diffs {
				Expect(d.Kind).To(Equal(field.DiffAdd))
			}
			Expect(diffs[0].To).To(Equal(field.Vec2{X: 9}))
			Expect(diffs[1].To).To(Equal(field.Vec2{X: 3}))
		})

		It("leaves the pending queue alone", func() {
			tracker.Add(1, field.Vec2{})
			before := tracker.Pending()
			tracker.RebuildDiffs()
			Expect(tracker.Pending()).To(Equal(before))
		})
	})
})
