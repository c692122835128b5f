// Package catalog holds the static device catalog: vendors, their device
// families, the devices within each family, and the packages each device is
// offered in. The data is authored in HCL, embedded into the binary, and
// decoded once at process start; after that the catalog is immutable and safe
// for concurrent lookups.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// ErrNotFound is the sentinel for every failed catalog lookup. Callers branch
// with errors.Is; the wrapped message names the offending id.
var ErrNotFound = errors.New("not found in device catalog")

//go:embed devices.hcl
var devicesHCL []byte

// Vendor is a device manufacturer.
type Vendor struct {
	ID       string
	Name     string
	Families []*Family

	families map[string]*Family
}

// Family is a device family. Its Architecture tag selects the code path every
// step generator takes for devices of this family.
type Family struct {
	ID           string
	Name         string
	Architecture string
	Vendor       *Vendor
	Devices      []*Device

	devices map[string]*Device
}

// Device is a single part within a family. Packages lists the package ids the
// part is offered in.
type Device struct {
	ID       string
	Name     string
	Family   *Family
	Packages []string
}

// Package is one physical package option of a device.
type Package struct {
	ID     string
	Device *Device
}

// Selection is a fully resolved (vendor, family, device, package) chain.
type Selection struct {
	Vendor  *Vendor
	Family  *Family
	Device  *Device
	Package *Package
}

// Architecture is a convenience accessor for the family architecture tag.
func (s *Selection) Architecture() string {
	return s.Family.Architecture
}

// Catalog is the lookup surface over the static device data.
type Catalog struct {
	Vendors []*Vendor

	vendors map[string]*Vendor
}

// --- HCL decode schema, mirroring the on-disk block layout. ---

type hclRoot struct {
	Vendors []*hclVendor `hcl:"vendor,block"`
}

type hclVendor struct {
	ID       string       `hcl:"id,label"`
	Name     string       `hcl:"name"`
	Families []*hclFamily `hcl:"family,block"`
}

type hclFamily struct {
	ID           string       `hcl:"id,label"`
	Name         string       `hcl:"name"`
	Architecture string       `hcl:"architecture"`
	Devices      []*hclDevice `hcl:"device,block"`
}

type hclDevice struct {
	ID       string   `hcl:"id,label"`
	Name     string   `hcl:"name"`
	Packages []string `hcl:"packages"`
}

// defaultCatalog is built once from the embedded data. Loading is the only
// mutation the catalog ever sees.
var defaultCatalog = mustLoad(devicesHCL)

// Default returns the process-wide device catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoad(src []byte) *Catalog {
	c, err := Load(src)
	if err != nil {
		panic(fmt.Errorf("catalog: embedded device data is invalid: %w", err))
	}
	return c
}

// Load decodes HCL device data and links the nodes into their parents. Most
// callers want Default; Load exists for catalogs other than the embedded one.
func Load(src []byte) (*Catalog, error) {
	var root hclRoot
	if err := hclsimple.Decode("devices.hcl", src, nil, &root); err != nil {
		return nil, err
	}

	c := &Catalog{vendors: make(map[string]*Vendor)}
	for _, hv := range root.Vendors {
		v := &Vendor{
			ID:       hv.ID,
			Name:     hv.Name,
			families: make(map[string]*Family),
		}
		for _, hf := range hv.Families {
			f := &Family{
				ID:           hf.ID,
				Name:         hf.Name,
				Architecture: hf.Architecture,
				Vendor:       v,
				devices:      make(map[string]*Device),
			}
			for _, hd := range hf.Devices {
				d := &Device{
					ID:       hd.ID,
					Name:     hd.Name,
					Family:   f,
					Packages: hd.Packages,
				}
				f.Devices = append(f.Devices, d)
				f.devices[d.ID] = d
			}
			v.Families = append(v.Families, f)
			v.families[f.ID] = f
		}
		c.Vendors = append(c.Vendors, v)
		c.vendors[v.ID] = v
	}
	return c, nil
}

// Vendor looks up a vendor by id.
func (c *Catalog) Vendor(id string) (*Vendor, error) {
	v, ok := c.vendors[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "vendor %q", id)
	}
	return v, nil
}

// Family looks up a family by id under the given vendor.
func (c *Catalog) Family(vendorID, familyID string) (*Family, error) {
	v, err := c.Vendor(vendorID)
	if err != nil {
		return nil, err
	}
	f, ok := v.families[familyID]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "family %q under vendor %q", familyID, vendorID)
	}
	return f, nil
}

// Device looks up a device by id under the given vendor and family.
func (c *Catalog) Device(vendorID, familyID, deviceID string) (*Device, error) {
	f, err := c.Family(vendorID, familyID)
	if err != nil {
		return nil, err
	}
	d, ok := f.devices[deviceID]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "device %q under family %q", deviceID, familyID)
	}
	return d, nil
}

// Package looks up one package option of a device.
func (c *Catalog) Package(vendorID, familyID, deviceID, packageID string) (*Package, error) {
	d, err := c.Device(vendorID, familyID, deviceID)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Packages {
		if p == packageID {
			return &Package{ID: p, Device: d}, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "package %q for device %q", packageID, deviceID)
}

// Resolve validates a whole (vendor, family, device, package) tuple and
// returns the linked chain. Generators call this before emitting any step.
func (c *Catalog) Resolve(vendorID, familyID, deviceID, packageID string) (*Selection, error) {
	pkg, err := c.Package(vendorID, familyID, deviceID, packageID)
	if err != nil {
		return nil, err
	}
	d := pkg.Device
	return &Selection{
		Vendor:  d.Family.Vendor,
		Family:  d.Family,
		Device:  d,
		Package: pkg,
	}, nil
}
