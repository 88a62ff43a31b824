package inventory

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.50", 12.5},
		{"£1,200.00", 1200},
		{"$45", 45},
		{"€3.99", 3.99},
		{" £7 ", 7},
		{"1,234,567.89", 1234567.89},
		{"", 0},
		{"n/a", 0},
		{"£", 0},
	}

	for _, c := range cases {
		if got := ParsePrice(c.in); got != c.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestExtractContainer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"B01-0001-5", "B01"},
		{"A-1-5", "A"},
		{"NODASH", "NODASH"},
		{"", ""},
	}

	for _, c := range cases {
		if got := ExtractContainer(c.in); got != c.want {
			t.Errorf("ExtractContainer(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractSequenceNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"B01-0001-5", "0001"},
		{"C12-0420-17", "0420"},
		{"B01-1-5", ""},
		{"", ""},
		{"no digits here", ""},
	}

	for _, c := range cases {
		if got := ExtractSequenceNumber(c.in); got != c.want {
			t.Errorf("ExtractSequenceNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBuildSKU(t *testing.T) {
	cases := []struct {
		container string
		sequence  string
		price     float64
		want      string
	}{
		{"B01", "0001", 5, "B01-0001-5"},
		{"B01", "1", 5, "B01-0001-5"},
		{"B01", "0001", 7.4, "B01-0001-7"},
		{"B01", "0001", 7.5, "B01-0001-8"},
		{"C02", "0042", 1200, "C02-0042-1200"},
	}

	for _, c := range cases {
		if got := BuildSKU(c.container, c.sequence, c.price); got != c.want {
			t.Errorf("BuildSKU(%q, %q, %v) = %q, want %q", c.container, c.sequence, c.price, got, c.want)
		}
	}
}

func TestBuildSKURoundTripsWithExtractors(t *testing.T) {
	sku := BuildSKU("B01", "0001", 5)
	if got := ExtractContainer(sku); got != "B01" {
		t.Errorf("ExtractContainer(%q) = %q, want B01", sku, got)
	}
	if got := ExtractSequenceNumber(sku); got != "0001" {
		t.Errorf("ExtractSequenceNumber(%q) = %q, want 0001", sku, got)
	}
}
