package domain

// Seed rows for the reference tables. Storage backends load these on first start.

var DefaultShipmentModes = []CatalogItem{
	{ID: 1, Code: "ROAD", Name: "جاده‌ای"},
	{ID: 2, Code: "RAIL", Name: "ریلی"},
	{ID: 3, Code: "SEA", Name: "دریایی"},
	{ID: 4, Code: "AIR", Name: "هوایی"},
}

var DefaultPackageTypes = []CatalogItem{
	{ID: 1, Code: "BOX", Name: "کارتن/جعبه"},
	{ID: 2, Code: "PALLET", Name: "پالت"},
	{ID: 3, Code: "ROLL", Name: "رول"},
	{ID: 4, Code: "BAG", Name: "کیسه"},
	{ID: 5, Code: "CRATE", Name: "باکس/صندوق"},
}

var DefaultIncoterms = []Incoterm{
	{CatalogItem: CatalogItem{ID: 1, Code: "EXW", Name: "تحویل در محل فروشنده (EXW)"}, Description: "تحویل در محل فروشنده (EXW)", Modes: allModeCodes()},
	{CatalogItem: CatalogItem{ID: 2, Code: "FCA", Name: "تحویل به حامل (FCA)"}, Description: "تحویل به حامل (FCA)", Modes: allModeCodes()},
	{CatalogItem: CatalogItem{ID: 3, Code: "CPT", Name: "کرایه پرداخت تا (CPT)"}, Description: "کرایه پرداخت تا (CPT)", Modes: allModeCodes()},
	{CatalogItem: CatalogItem{ID: 4, Code: "CIP", Name: "کرایه و بیمه پرداخت تا (CIP)"}, Description: "کرایه و بیمه پرداخت تا (CIP)", Modes: allModeCodes()},
	{CatalogItem: CatalogItem{ID: 5, Code: "DAP", Name: "تحویل در محل (DAP)"}, Description: "تحویل در محل (DAP)", Modes: allModeCodes()},
	{CatalogItem: CatalogItem{ID: 6, Code: "DDP", Name: "تحویل عوارض پرداخت‌شده (DDP)"}, Description: "تحویل عوارض پرداخت‌شده (DDP)", Modes: allModeCodes()},
	{CatalogItem: CatalogItem{ID: 7, Code: "FOB", Name: "تحویل روی عرشه (FOB)"}, Description: "تحویل روی عرشه کشتی در بندر مبدأ (FOB)", Modes: []string{"SEA"}},
	{CatalogItem: CatalogItem{ID: 8, Code: "CIF", Name: "هزینه، بیمه و کرایه (CIF)"}, Description: "هزینه، بیمه و کرایه تا بندر مقصد (CIF)", Modes: []string{"SEA"}},
}

func allModeCodes() []string {
	codes := make([]string, 0, len(DefaultShipmentModes))
	for _, m := range DefaultShipmentModes {
		codes = append(codes, m.Code)
	}
	return codes
}
