package cart

import (
	"testing"

	"atelier-boutique/internal/catalog"
	"atelier-boutique/internal/domain"
	"atelier-boutique/internal/notify"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	kinds []notify.Kind
}

func (n *recordingNotifier) Notify(kind notify.Kind, message string) {
	n.kinds = append(n.kinds, kind)
}

func newTestEngine() (*Engine, *catalog.Store, *recordingNotifier) {
	store := catalog.NewStore([]domain.Product{
		{
			ID: "1", Name: "Suéter Cashmere", Category: "Sweaters", Price: 89900, Image: "/assets/product-1.jpg",
			Sizes: []domain.SizeStock{{Size: "S", Stock: 3}, {Size: "M", Stock: 5}},
		},
		{
			ID: "2", Name: "Vestido Seda Olive", Category: "Vestidos", Price: 129900,
			Sizes: []domain.SizeStock{{Size: "M", Stock: 1}},
		},
		{
			ID: "5", Name: "Blusa Seda Sage", Category: "Blusas", Price: 79900,
			Sizes: []domain.SizeStock{{Size: "S", Stock: 0}},
		},
	})
	notifier := &recordingNotifier{}
	return NewEngine(store, notifier), store, notifier
}

func TestAddItem_CreatesSnapshotLine(t *testing.T) {
	engine, store, notifier := newTestEngine()

	line, err := engine.AddItem("1", "M")
	require.NoError(t, err)

	assert.Equal(t, "1", line.ProductID)
	assert.Equal(t, "M", line.Size)
	assert.Equal(t, "Suéter Cashmere", line.Name)
	assert.Equal(t, int64(89900), line.Price)
	assert.Equal(t, "/assets/product-1.jpg", line.Image)
	assert.Equal(t, 1, line.Quantity)

	p, _ := store.FindByID("1")
	assert.Equal(t, 4, p.Sizes[1].Stock, "stock decremented with the addition")
	assert.Contains(t, notifier.kinds, notify.KindItemAdded)
}

func TestAddItem_MergesByProductAndSize(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.AddItem("1", "M")
	require.NoError(t, err)
	line, err := engine.AddItem("1", "M")
	require.NoError(t, err)

	assert.Equal(t, 2, line.Quantity)
	assert.Len(t, engine.Lines(), 1, "same key merges, never duplicates")
}

func TestAddItem_DifferentSizesAreSeparateLines(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.AddItem("1", "S")
	require.NoError(t, err)
	_, err = engine.AddItem("1", "M")
	require.NoError(t, err)

	assert.Len(t, engine.Lines(), 2)
}

func TestAddItem_OutOfStockLeavesEverythingUnchanged(t *testing.T) {
	engine, store, _ := newTestEngine()

	_, err := engine.AddItem("5", "S")
	assert.ErrorIs(t, err, catalog.ErrOutOfStock)
	assert.Empty(t, engine.Lines())

	p, _ := store.FindByID("5")
	assert.Equal(t, 0, p.TotalStock())
}

func TestAddItem_UnknownProduct(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.AddItem("missing", "S")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Empty(t, engine.Lines())
}

func TestAddItem_LastUnitTriggersStockEmptyWarning(t *testing.T) {
	engine, _, notifier := newTestEngine()

	_, err := engine.AddItem("2", "M")
	require.NoError(t, err)

	assert.Contains(t, notifier.kinds, notify.KindStockEmpty)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("positive delta increments in place", func(t *testing.T) {
		engine, _, _ := newTestEngine()
		engine.AddItem("1", "M")

		engine.UpdateQuantity("1", "M", 2)

		lines := engine.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("reaching zero removes the line", func(t *testing.T) {
		engine, _, _ := newTestEngine()
		engine.AddItem("1", "M")
		engine.AddItem("1", "M")

		engine.UpdateQuantity("1", "M", -2)

		assert.Empty(t, engine.Lines())
	})

	t.Run("delta below zero clamps, line removed", func(t *testing.T) {
		engine, _, _ := newTestEngine()
		engine.AddItem("1", "M")

		engine.UpdateQuantity("1", "M", -10)

		assert.Empty(t, engine.Lines())
	})

	t.Run("removal does not restore stock", func(t *testing.T) {
		engine, store, _ := newTestEngine()
		engine.AddItem("1", "M")

		engine.UpdateQuantity("1", "M", -1)

		p, _ := store.FindByID("1")
		assert.Equal(t, 4, p.Sizes[1].Stock, "removed units stay reserved until session reset")
	})

	t.Run("absent key is a no-op", func(t *testing.T) {
		engine, _, _ := newTestEngine()
		engine.AddItem("1", "M")

		engine.UpdateQuantity("2", "M", -1)

		require.Len(t, engine.Lines(), 1)
		assert.Equal(t, 1, engine.Lines()[0].Quantity)
	})
}

func TestTotals(t *testing.T) {
	engine, _, _ := newTestEngine()
	engine.AddItem("1", "M") // 89900

	assert.Equal(t, int64(89900), engine.Subtotal())
	assert.Equal(t, int64(94900), engine.Total(5000))

	engine.AddItem("2", "M") // +129900
	engine.AddItem("1", "M") // +89900

	assert.Equal(t, int64(309700), engine.Subtotal())
	assert.Equal(t, int64(314700), engine.Total(5000))
	assert.Equal(t, 3, engine.ItemCount())
}

func TestClear(t *testing.T) {
	engine, _, _ := newTestEngine()
	engine.AddItem("1", "M")

	engine.Clear()

	assert.True(t, engine.IsEmpty())
	assert.Equal(t, 0, engine.ItemCount())
	assert.Equal(t, int64(0), engine.Subtotal())
}

// Snapshot prices are captured at add time; later additions of the same key
// keep the original snapshot.
func TestAddItem_SnapshotIsStable(t *testing.T) {
	engine, _, _ := newTestEngine()

	first, err := engine.AddItem("1", "M")
	require.NoError(t, err)
	second, err := engine.AddItem("1", "M")
	require.NoError(t, err)

	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, first.Name, second.Name)
}

// Cart invariants hold under arbitrary add/update interleavings: at most
// one line per key, no line with quantity <= 0, subtotal always equals the
// sum over lines.
func TestProperty_CartInvariants(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("invariants survive random operation sequences", prop.ForAll(
		func(adds []int, deltas []int) bool {
			engine, _, _ := newTestEngine()
			keys := []struct{ id, size string }{
				{"1", "S"}, {"1", "M"}, {"2", "M"}, {"5", "S"},
			}

			for _, a := range adds {
				if a < 0 {
					a = -a
				}
				k := keys[a%len(keys)]
				engine.AddItem(k.id, k.size)
			}
			for i, d := range deltas {
				k := keys[i%len(keys)]
				engine.UpdateQuantity(k.id, k.size, d)
			}

			seen := map[string]bool{}
			var subtotal int64
			for _, l := range engine.Lines() {
				if l.Quantity <= 0 {
					return false
				}
				key := l.ProductID + "/" + l.Size
				if seen[key] {
					return false
				}
				seen[key] = true
				subtotal += l.Price * int64(l.Quantity)
			}
			return subtotal == engine.Subtotal()
		},
		gen.SliceOf(gen.IntRange(0, 100)),
		gen.SliceOf(gen.IntRange(-5, 5)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
