package directory

import (
	"errors"
	"testing"

	"github.com/ghaddam/armnn/internal/adapters/uidalloc"
	"github.com/ghaddam/armnn/internal/domain"
)

func newTestDirectory() *Directory {
	return New(uidalloc.New())
}

func TestRegisterCategoryRejectsBadNameAndDuplicate(t *testing.T) {
	d := newTestDirectory()
	if _, err := d.RegisterCategory("inv@lid", 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected InvalidArgument for bad charset, got %v", err)
	}
	if _, err := d.RegisterCategory("cpu", 0, 0); err != nil {
		t.Fatalf("expected valid category to register: %v", err)
	}
	if _, err := d.RegisterCategory("cpu", 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestRegisterDeviceSetsParentCategoryDeviceUid(t *testing.T) {
	d := newTestDirectory()
	if _, err := d.RegisterCategory("cpu", 0, 0); err != nil {
		t.Fatalf("category: %v", err)
	}
	dev, err := d.RegisterDevice("bigcore", 4, "cpu")
	if err != nil {
		t.Fatalf("device: %v", err)
	}
	cat, ok := d.GetCategory("cpu")
	if !ok {
		t.Fatalf("expected category to still exist")
	}
	if cat.DeviceUid != dev.Uid {
		t.Fatalf("expected category deviceUid=%d, got %d", dev.Uid, cat.DeviceUid)
	}
}

func TestRegisterCounterAppendsContiguousRangeToCategory(t *testing.T) {
	d := newTestDirectory()
	if _, err := d.RegisterCategory("cpu", 0, 0); err != nil {
		t.Fatalf("category: %v", err)
	}
	ctr, err := d.RegisterCounter(CounterParams{
		ParentCategory: "cpu",
		Class:          domain.CounterClassMultiple,
		Interpolation:  domain.CounterInterpolationLinear,
		Multiplier:     1.0,
		Name:           "cycles",
		Description:    "cycle_count",
		Cores:          4,
	})
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if ctr.MaxCounterUid != ctr.Uid+3 {
		t.Fatalf("expected maxCounterUid = uid+3, got uid=%d max=%d", ctr.Uid, ctr.MaxCounterUid)
	}
	cat, _ := d.GetCategory("cpu")
	if len(cat.Counters) != 4 {
		t.Fatalf("expected 4 uids appended to category, got %d", len(cat.Counters))
	}
	for i, id := range cat.Counters {
		if id != ctr.Uid+domain.Uid(i) {
			t.Fatalf("expected contiguous order, got %v", cat.Counters)
		}
	}
}

func TestRegisterCounterRejectionMatrix(t *testing.T) {
	d := newTestDirectory()
	if _, err := d.RegisterCategory("cpu", 0, 0); err != nil {
		t.Fatalf("category: %v", err)
	}
	valid := func() CounterParams {
		return CounterParams{
			ParentCategory: "cpu",
			Class:          domain.CounterClassDefault,
			Interpolation:  domain.CounterInterpolationStep,
			Multiplier:     1.0,
			Name:           "latency",
			Description:    "latency_ns",
			Units:          "ns",
		}
	}

	cases := map[string]func(CounterParams) CounterParams{
		"empty parent": func(p CounterParams) CounterParams { p.ParentCategory = ""; return p },
		"missing parent": func(p CounterParams) CounterParams {
			p.ParentCategory = "does_not_exist"
			return p
		},
		"bad class":         func(p CounterParams) CounterParams { p.Class = 2; return p },
		"bad interpolation": func(p CounterParams) CounterParams { p.Interpolation = 3; return p },
		"zero multiplier":   func(p CounterParams) CounterParams { p.Multiplier = 0; return p },
		"empty name":        func(p CounterParams) CounterParams { p.Name = ""; return p },
		"bad name charset":  func(p CounterParams) CounterParams { p.Name = "inv@lid nam€"; return p },
		"empty description": func(p CounterParams) CounterParams { p.Description = ""; return p },
		"bad description":   func(p CounterParams) CounterParams { p.Description = "inv@lid description"; return p },
		"bad units":         func(p CounterParams) CounterParams { p.Units = "Mb/s2"; return p },
		"unregistered device":     func(p CounterParams) CounterParams { p.DeviceUid = 100; return p },
		"unregistered counterset": func(p CounterParams) CounterParams { p.CounterSetUid = 100; return p },
	}

	before := d.CounterCount()
	for name, mutate := range cases {
		if _, err := d.RegisterCounter(mutate(valid())); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: expected InvalidArgument, got %v", name, err)
		}
	}
	if got := d.CounterCount(); got != before {
		t.Fatalf("expected counter count unchanged (%d), got %d", before, got)
	}
}

func TestGettersNeverFailOnMissingKeys(t *testing.T) {
	d := newTestDirectory()
	if _, ok := d.GetCategory("nope"); ok {
		t.Fatalf("expected absent category")
	}
	if _, ok := d.GetDevice(999); ok {
		t.Fatalf("expected absent device")
	}
	if _, ok := d.GetCounterSet(999); ok {
		t.Fatalf("expected absent counter set")
	}
}
