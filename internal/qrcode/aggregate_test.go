package qrcode

import "testing"

func TestTotalWeight_Empty(t *testing.T) {
	if got := TotalWeight(nil); got != 0 {
		t.Fatalf("expected 0 for no codes, got %v", got)
	}
	if got := TotalWeight([]string{}); got != 0 {
		t.Fatalf("expected 0 for empty list, got %v", got)
	}
}

func TestTotalWeight_IgnoresPlainBarcodes(t *testing.T) {
	codes := []string{"1;a;b;10", "1;c;d;5", "x"}
	if got := TotalWeight(codes); got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}

func TestTotalWeight_OrderIndependent(t *testing.T) {
	codes := []string{"1;a;b;0,1", "2;a;b;0,2", "3;a;b;0,3", "plain", "4;a;b;1e-1"}
	reversed := make([]string, len(codes))
	for i, c := range codes {
		reversed[len(codes)-1-i] = c
	}
	rotated := append(append([]string{}, codes[2:]...), codes[:2]...)

	want := TotalWeight(codes)
	if want != 0.7 {
		t.Fatalf("expected exact 0.7, got %v", want)
	}
	for _, perm := range [][]string{reversed, rotated} {
		if got := TotalWeight(perm); got != want {
			t.Fatalf("TotalWeight(%v) = %v, want %v", perm, got, want)
		}
	}
}

func TestGroupByOrder(t *testing.T) {
	groups := GroupByOrder([]string{"1;a;b;10", "1;c;d;5", "x"})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d: %+v", len(groups), groups)
	}
	items := groups["1"]
	if len(items) != 2 {
		t.Fatalf("expected 2 items in group 1, got %d", len(items))
	}
	if items[0].Weight != 10 || items[1].Weight != 5 {
		t.Fatalf("expected weights 10 then 5, got %v then %v", items[0].Weight, items[1].Weight)
	}
}

func TestGroupByOrder_KeysAndScanOrder(t *testing.T) {
	codes := []string{"B;a1;b;1", "A;a2;b;2", "4006381333931", "B;a3;b;3", "A;a4;b;4", "C;a5;b;5"}
	groups := GroupByOrder(codes)

	for _, key := range []string{"A", "B", "C"} {
		if _, ok := groups[key]; !ok {
			t.Fatalf("missing group %q", key)
		}
	}
	if len(groups) != 3 {
		t.Fatalf("expected exactly 3 groups, got %d", len(groups))
	}
	if groups["B"][0].ArticleNumber != "a1" || groups["B"][1].ArticleNumber != "a3" {
		t.Fatalf("group B out of scan order: %+v", groups["B"])
	}
	for key, items := range groups {
		for _, it := range items {
			if it.RawData == "4006381333931" {
				t.Fatalf("plain barcode leaked into group %q", key)
			}
		}
	}

	ordered := OrderedGroups(codes)
	if len(ordered) != 3 || ordered[0].OrderNumber != "B" || ordered[1].OrderNumber != "A" || ordered[2].OrderNumber != "C" {
		t.Fatalf("ordered groups not in first-seen order: %+v", ordered)
	}
	if ordered[0].TotalWeight != 4 || ordered[1].TotalWeight != 6 {
		t.Fatalf("unexpected subtotals: %v %v", ordered[0].TotalWeight, ordered[1].TotalWeight)
	}
}

func TestFormatWeight(t *testing.T) {
	cases := []struct {
		in       float64
		expected string
	}{
		{0, "0.0 kg"},
		{1500, "1500.0 kg"},
		{12.25, "12.2 kg"},
		{2.56, "2.6 kg"},
	}
	for _, tc := range cases {
		if got := FormatWeight(tc.in); got != tc.expected {
			t.Fatalf("FormatWeight(%v) expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]string{"1;a;b;10", "1;c;d;5", "x", "2;e;f;2,5"})
	if s.TotalCount != 4 || s.StructuredCount != 3 || s.UnstructuredCount != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.TotalWeight != 17.5 || s.TotalWeightFormatted != "17.5 kg" {
		t.Fatalf("unexpected weight: %v %q", s.TotalWeight, s.TotalWeightFormatted)
	}
	if len(s.Orders) != 2 || len(s.Unstructured) != 1 || s.Unstructured[0] != "x" {
		t.Fatalf("unexpected grouping: %+v", s)
	}

	empty := Summarize(nil)
	if empty.Orders == nil || empty.Unstructured == nil {
		t.Fatalf("empty summary should use empty slices for JSON")
	}
}
