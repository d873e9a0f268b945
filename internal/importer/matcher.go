// Package importer turns tabular workbooks into catalog products: header
// detection, row normalisation and the automatic/manual import pipeline.
package importer

import (
	"strings"

	"go-price-checker/internal/model"
)

// NotFound is returned by FindColumnIndex when no header matches
const NotFound = -1

// Synonyms lists accepted header variants per field in priority order.
// "cost" and "description" intentionally appear under two fields; the same
// column may then feed both.
var Synonyms = map[model.Field][]string{
	model.FieldBarcode: {
		"barcode", "bar code", "bar_code", "sku", "code", "item code", "itemcode",
		"product code", "productcode", "upc", "ean", "gtin", "item number", "itemnumber",
		"item_number", "part number", "partnumber", "part_number",
	},
	model.FieldName: {
		"name", "product name", "productname", "product_name", "title", "description",
		"item name", "itemname", "item_name", "product", "item", "product title",
		"producttitle", "product_title",
	},
	model.FieldPrice: {
		"price", "cost", "amount", "value", "retail price", "retailprice", "retail_price",
		"sale price", "saleprice", "sale_price", "selling price", "sellingprice",
		"selling_price", "unit price", "unitprice", "unit_price", "msrp", "srp",
	},
	model.FieldUPC: {
		"upc", "ean", "gtin", "universal product code", "europeanarticlenumber",
		"global trade item number",
	},
	model.FieldDescription: {
		"description", "desc", "details", "info", "notes", "comment", "remarks",
		"long description", "longdescription", "long_description",
	},
	model.FieldCost: {
		"cost", "wholesale", "wholesale price", "wholesaleprice", "wholesale_price",
		"buy price", "buyprice", "buy_price", "purchase price", "purchaseprice",
		"purchase_price",
	},
	model.FieldCategory: {
		"category", "cat", "type", "group", "department", "dept", "section", "class",
		"classification",
	},
	model.FieldBrand: {
		"brand", "manufacturer", "make", "company", "vendor", "supplier", "mfg", "mfr",
	},
	model.FieldStockQuantity: {
		"stock", "qty", "quantity", "inventory", "stock quantity", "stockquantity",
		"stock_quantity", "on hand", "onhand", "on_hand", "available", "in stock",
		"instock", "in_stock",
	},
	model.FieldMinStockLevel: {
		"min stock", "minstock", "min_stock", "minimum", "reorder level", "reorderlevel",
		"reorder_level", "min level", "minlevel", "min_level",
	},
	model.FieldLocation: {
		"location", "loc", "position", "aisle", "bin", "shelf", "warehouse", "store",
		"section",
	},
}

// normalize lower-cases s and drops everything outside [a-z0-9]
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindColumnIndex returns the index of the first header containing the first
// candidate that matches anywhere. Candidate priority dominates header position.
func FindColumnIndex(headers []string, candidates []string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalize(h)
	}
	for _, candidate := range candidates {
		want := normalize(candidate)
		if want == "" {
			continue
		}
		for i, h := range normalized {
			if strings.Contains(h, want) {
				return i
			}
		}
	}
	return NotFound
}

// FindField resolves one canonical field against headers
func FindField(headers []string, field model.Field) int {
	return FindColumnIndex(headers, Synonyms[field])
}

// DetectColumns resolves every canonical field, required first, and returns
// only the fields that matched.
func DetectColumns(headers []string) model.ColumnMapping {
	mapping := model.ColumnMapping{}
	for _, f := range model.RequiredFields {
		if idx := FindField(headers, f); idx != NotFound {
			mapping[f] = idx
		}
	}
	for _, f := range model.OptionalFields {
		if idx := FindField(headers, f); idx != NotFound {
			mapping[f] = idx
		}
	}
	return mapping
}

// ExactColumns maps fields to headers whose trimmed, lower-cased text equals the
// field name. Used for machine-written CSV feeds with fixed column names.
func ExactColumns(headers []string) model.ColumnMapping {
	mapping := model.ColumnMapping{}
	fields := append(append([]model.Field{}, model.RequiredFields...), model.OptionalFields...)
	for _, f := range fields {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), string(f)) {
				mapping[f] = i
				break
			}
		}
	}
	return mapping
}
