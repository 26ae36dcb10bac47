package workflow

import (
	"context"
	"testing"

	"pgregory.net/rapid"
)

// Every unit that left the shelf is either in the open cart or in the
// order history.
func TestWorkflow_Property_HistoryReconcilesWithStock(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := setup(t)
		initial := map[string]int{"I001": 10, "I002": 20}
		itemIDs := []string{"I001", "I002"}

		rt.Repeat(map[string]func(*rapid.T){
			"add": func(rt *rapid.T) {
				id := rapid.SampledFrom(itemIDs).Draw(rt, "id")
				_, _ = f.wf.AddItem(id, rapid.IntRange(-1, 8).Draw(rt, "qty"))
			},
			"remove": func(rt *rapid.T) {
				_, _ = f.wf.RemoveCartLine(rapid.SampledFrom(itemIDs).Draw(rt, "id"))
			},
			"cancel": func(rt *rapid.T) {
				if _, err := f.wf.CancelOrder(); err != nil {
					rt.Fatalf("cancel: %v", err)
				}
			},
			"place": func(rt *rapid.T) {
				customer := rapid.SampledFrom([]string{"", "C001", "C002"}).Draw(rt, "customer")
				_, _ = f.wf.PlaceOrder(context.Background(), PlaceOrderRequest{CustomerID: customer})
			},
			"": func(rt *rapid.T) {
				committed := map[string]int{}
				for _, line := range f.history.Lines() {
					committed[line.ItemID] += line.Quantity
				}
				reserved := map[string]int{}
				for _, line := range f.wf.View().Lines {
					reserved[line.ItemID] += line.Quantity
				}
				for id, start := range initial {
					item, err := f.items.Find(id)
					if err != nil {
						rt.Fatalf("find %s: %v", id, err)
					}
					if item.StockQuantity < 0 {
						rt.Fatalf("negative stock for %s", id)
					}
					if got := item.StockQuantity + reserved[id] + committed[id]; got != start {
						rt.Fatalf("%s: shelf %d + cart %d + history %d != %d", id, item.StockQuantity, reserved[id], committed[id], start)
					}
				}
			},
		})
	})
}
