package gst

import "strings"

// stateCodes maps the 2-digit GST state code to the state or UT name.
var stateCodes = map[string]string{
	"01": "Jammu & Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman & Diu",
	"26": "Dadra & Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh (Old)",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman & Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"97": "Other Territory",
	"99": "Centre Jurisdiction",
}

// stateByName is the reverse index, keyed by normalized name.
// "Andhra Pradesh" resolves to 37, the post-2014 code.
var stateByName = func() map[string]string {
	m := make(map[string]string, len(stateCodes))
	for code, name := range stateCodes {
		m[normalizeState(name)] = code
	}
	return m
}()

// StateName returns the state for a 2-digit code, or "" when unknown.
func StateName(code string) string {
	return stateCodes[strings.TrimSpace(code)]
}

// StateCodeByName returns the code for a state name, ignoring case and surrounding space.
func StateCodeByName(name string) (string, bool) {
	code, ok := stateByName[normalizeState(name)]
	return code, ok
}

// ValidStateCode reports whether code is a known GST state code.
func ValidStateCode(code string) bool {
	_, ok := stateCodes[code]
	return ok
}

// StateCodeOf returns the state code a party is registered in.
// The GSTIN prefix takes precedence over the state name.
func StateCodeOf(p Party) string {
	if g := strings.TrimSpace(p.GSTIN); len(g) >= 2 && ValidStateCode(g[:2]) {
		return g[:2]
	}
	if code, ok := StateCodeByName(p.State); ok {
		return code
	}
	return ""
}

// PlaceOfSupply resolves the POS code printed on the invoice: the buyer's state
// when it can be determined, else the seller's.
func PlaceOfSupply(seller, buyer Party) string {
	if code := StateCodeOf(buyer); code != "" {
		return code
	}
	return StateCodeOf(seller)
}

// PlaceOfSupplyLabel formats a POS code as "24-Gujarat".
func PlaceOfSupplyLabel(code string) string {
	if code == "" {
		return ""
	}
	if name := StateName(code); name != "" {
		return code + "-" + name
	}
	return code
}
