package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/utafrali/storefront/internal/domain"
)

//go:embed products.yaml
var embeddedProducts []byte

// Source resolves product ids to catalog records. Lookups never fail
// for any reason other than the id being unknown.
type Source interface {
	FindByID(id string) (domain.Product, bool)
}

// Catalog is a static, read-only product list kept in file order.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

type fileFormat struct {
	Products []productRecord `yaml:"products"`
}

type productRecord struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Discount    string   `yaml:"discount"`
	Rating      float64  `yaml:"rating"`
	ReviewCount int      `yaml:"review_count"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Stock       int      `yaml:"stock"`
	ImagePath   string   `yaml:"image_path"`
	ARURL       string   `yaml:"ar_url"`
}

func (r productRecord) toDomain() (domain.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: parse price %q: %w", r.ID, r.Price, err)
	}

	discount := decimal.Zero
	if r.Discount != "" {
		discount, err = decimal.NewFromString(r.Discount)
		if err != nil {
			return domain.Product{}, fmt.Errorf("product %s: parse discount %q: %w", r.ID, r.Discount, err)
		}
	}

	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Discount:    discount,
		Stock:       r.Stock,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Category:    r.Category,
		Tags:        r.Tags,
		ImagePath:   r.ImagePath,
		ARURL:       r.ARURL,
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// New builds a catalog from products, rejecting invalid records and duplicate ids.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	products := make([]domain.Product, 0, len(doc.Products))
	for _, rec := range doc.Products {
		p, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return New(products)
}

// Load reads the catalog from path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedProducts)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// FindByID implements Source.
func (c *Catalog) FindByID(id string) (domain.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[idx], true
}

// All returns every product in catalog order.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
