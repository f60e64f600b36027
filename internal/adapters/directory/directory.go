// Package directory implements the counter directory (spec §4.C4):
// the schema of categories, devices, counter sets and counters, with
// cross-referential integrity enforced at registration time. All
// mutating operations fail atomically — directory state is unchanged
// on any validation error — mirroring the teacher's config validation
// idiom (internal/app/config.Config.validate) generalised to a live,
// concurrently-mutated store instead of a one-shot load.
package directory

import (
	"fmt"
	"math"
	"regexp"
	"sync"

	"github.com/ghaddam/armnn/internal/adapters/uidalloc"
	"github.com/ghaddam/armnn/internal/domain"
)

// ErrInvalidArgument is the sentinel wrapped by every registration
// failure: bad name, bad charset, out-of-range enum, duplicate name,
// or an unresolved parent uid.
var ErrInvalidArgument = fmt.Errorf("armnn: invalid argument")

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func validIdentifier(s string) bool {
	return s != "" && identifierPattern.MatchString(s)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Directory is a counter schema store; each Service owns one.
type Directory struct {
	mu    sync.RWMutex
	uids  *uidalloc.Allocator
	cats  map[string]*domain.Category
	devs  map[domain.Uid]*domain.Device
	dName map[string]domain.Uid
	sets  map[domain.Uid]*domain.CounterSet
	sName map[string]domain.Uid
	ctrs  map[domain.Uid]*domain.Counter
}

// New returns an empty directory backed by the given allocator. A
// directory never allocates its own allocator so that a service can
// share one uid sequence across the directory and any other object
// kind that needs uids.
func New(uids *uidalloc.Allocator) *Directory {
	return &Directory{
		uids:  uids,
		cats:  make(map[string]*domain.Category),
		devs:  make(map[domain.Uid]*domain.Device),
		dName: make(map[string]domain.Uid),
		sets:  make(map[domain.Uid]*domain.CounterSet),
		sName: make(map[string]domain.Uid),
		ctrs:  make(map[domain.Uid]*domain.Counter),
	}
}

// RegisterCategory adds a new category. deviceUid/counterSetUid of 0
// mean "none"; any other value must already resolve.
func (d *Directory) RegisterCategory(name string, deviceUid, counterSetUid domain.Uid) (domain.Category, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !validIdentifier(name) {
		return domain.Category{}, invalid("category name %q is not a valid identifier", name)
	}
	if _, exists := d.cats[name]; exists {
		return domain.Category{}, invalid("category %q already registered", name)
	}
	if deviceUid != 0 {
		if _, ok := d.devs[deviceUid]; !ok {
			return domain.Category{}, invalid("device uid %d does not resolve", deviceUid)
		}
	}
	if counterSetUid != 0 {
		if _, ok := d.sets[counterSetUid]; !ok {
			return domain.Category{}, invalid("counter set uid %d does not resolve", counterSetUid)
		}
	}

	cat := &domain.Category{Name: name, DeviceUid: deviceUid, CounterSetUid: counterSetUid}
	d.cats[name] = cat
	return *cat, nil
}

// RegisterDevice adds a new device. If parentCategoryName is non-empty
// it must name an existing category, whose DeviceUid is then set to
// the new device's uid.
func (d *Directory) RegisterDevice(name string, cores uint16, parentCategoryName string) (domain.Device, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !validIdentifier(name) {
		return domain.Device{}, invalid("device name %q is not a valid identifier", name)
	}
	if _, exists := d.dName[name]; exists {
		return domain.Device{}, invalid("device %q already registered", name)
	}
	var cat *domain.Category
	if parentCategoryName != "" {
		c, ok := d.cats[parentCategoryName]
		if !ok {
			return domain.Device{}, invalid("parent category %q does not exist", parentCategoryName)
		}
		cat = c
	}

	uid := d.uids.NextUid()
	dev := &domain.Device{Uid: uid, Name: name, Cores: cores}
	d.devs[uid] = dev
	d.dName[name] = uid
	if cat != nil {
		cat.DeviceUid = uid
	}
	return *dev, nil
}

// RegisterCounterSet adds a new counter set, symmetric to
// RegisterDevice.
func (d *Directory) RegisterCounterSet(name string, count uint16, parentCategoryName string) (domain.CounterSet, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !validIdentifier(name) {
		return domain.CounterSet{}, invalid("counter set name %q is not a valid identifier", name)
	}
	if _, exists := d.sName[name]; exists {
		return domain.CounterSet{}, invalid("counter set %q already registered", name)
	}
	var cat *domain.Category
	if parentCategoryName != "" {
		c, ok := d.cats[parentCategoryName]
		if !ok {
			return domain.CounterSet{}, invalid("parent category %q does not exist", parentCategoryName)
		}
		cat = c
	}

	uid := d.uids.NextUid()
	set := &domain.CounterSet{Uid: uid, Name: name, Count: count}
	d.sets[uid] = set
	d.sName[name] = uid
	if cat != nil {
		cat.CounterSetUid = uid
	}
	return *set, nil
}

// CounterParams bundles the arguments to RegisterCounter; cores of 0
// means a single-core counter.
type CounterParams struct {
	ParentCategory string
	Class          int
	Interpolation  int
	Multiplier     float32
	Name           string
	Description    string
	Units          string
	Cores          uint16
	DeviceUid      domain.Uid
	CounterSetUid  domain.Uid
}

// RegisterCounter validates and adds a new counter. Validation order
// matches the original implementation's check sequence so that error
// messages are stable: parent category, class, interpolation,
// multiplier, name, description, units, device uid, counter-set uid.
func (d *Directory) RegisterCounter(p CounterParams) (domain.Counter, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cat, ok := d.cats[p.ParentCategory]
	if !ok {
		return domain.Counter{}, invalid("parent category %q does not exist", p.ParentCategory)
	}
	if p.Class != domain.CounterClassDefault && p.Class != domain.CounterClassMultiple {
		return domain.Counter{}, invalid("class %d is not one of {0,1}", p.Class)
	}
	if p.Interpolation != domain.CounterInterpolationStep && p.Interpolation != domain.CounterInterpolationLinear {
		return domain.Counter{}, invalid("interpolation %d is not one of {0,1}", p.Interpolation)
	}
	if p.Multiplier <= 0 || math.IsInf(float64(p.Multiplier), 0) || math.IsNaN(float64(p.Multiplier)) {
		return domain.Counter{}, invalid("multiplier %v must be finite and > 0", p.Multiplier)
	}
	if !validIdentifier(p.Name) {
		return domain.Counter{}, invalid("counter name %q is not a valid identifier", p.Name)
	}
	if !validIdentifier(p.Description) {
		return domain.Counter{}, invalid("counter description %q must be non-empty and charset-valid", p.Description)
	}
	if p.Units != "" && !validIdentifier(p.Units) {
		return domain.Counter{}, invalid("units %q is not charset-valid", p.Units)
	}
	if p.DeviceUid != 0 {
		if _, ok := d.devs[p.DeviceUid]; !ok {
			return domain.Counter{}, invalid("device uid %d does not resolve", p.DeviceUid)
		}
	}
	if p.CounterSetUid != 0 {
		if _, ok := d.sets[p.CounterSetUid]; !ok {
			return domain.Counter{}, invalid("counter set uid %d does not resolve", p.CounterSetUid)
		}
	}

	cores := p.Cores
	if cores == 0 {
		cores = 1
	}
	ids := d.uids.NextCounterUids(cores)

	ctr := &domain.Counter{
		Uid:            ids[0],
		MaxCounterUid:  ids[len(ids)-1],
		Class:          p.Class,
		Interpolation:  p.Interpolation,
		Multiplier:     p.Multiplier,
		Name:           p.Name,
		Description:    p.Description,
		Units:          p.Units,
		DeviceUid:      p.DeviceUid,
		CounterSetUid:  p.CounterSetUid,
		ParentCategory: p.ParentCategory,
	}
	for _, id := range ids {
		d.ctrs[id] = ctr
		cat.Counters = append(cat.Counters, id)
	}
	return *ctr, nil
}

// GetCategory never fails; ok is false if name is unregistered.
func (d *Directory) GetCategory(name string) (domain.Category, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.cats[name]
	if !ok {
		return domain.Category{}, false
	}
	return *c, true
}

// GetDevice never fails; ok is false if uid is unregistered.
func (d *Directory) GetDevice(uid domain.Uid) (domain.Device, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	dev, ok := d.devs[uid]
	if !ok {
		return domain.Device{}, false
	}
	return *dev, true
}

// GetCounterSet never fails; ok is false if uid is unregistered.
func (d *Directory) GetCounterSet(uid domain.Uid) (domain.CounterSet, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sets[uid]
	if !ok {
		return domain.CounterSet{}, false
	}
	return *s, true
}

// GetCounter never fails; ok is false if uid is unregistered.
func (d *Directory) GetCounter(uid domain.Uid) (domain.Counter, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.ctrs[uid]
	if !ok {
		return domain.Counter{}, false
	}
	return *c, true
}

func (d *Directory) CategoryCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.cats)
}

func (d *Directory) DeviceCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.devs)
}

func (d *Directory) CounterSetCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sets)
}

// CounterCount counts distinct registrations, not uids: a
// multi-core counter contributes one to this count even though it
// occupies several uids.
func (d *Directory) CounterCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seen := make(map[domain.Uid]bool)
	count := 0
	for uid, c := range d.ctrs {
		if uid == c.Uid {
			count++
			seen[uid] = true
		}
	}
	return count
}
