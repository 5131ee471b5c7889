package timezones

import "sort"

// Country holds one entry of the supported-country list exposed to clients.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var countryNames = map[string]string{
	"US": "United States", "CA": "Canada", "MX": "Mexico",
	"CR": "Costa Rica", "PA": "Panama", "GT": "Guatemala", "HN": "Honduras",
	"SV": "El Salvador", "NI": "Nicaragua",
	"DO": "Dominican Republic", "PR": "Puerto Rico",
	"BR": "Brazil", "AR": "Argentina", "CL": "Chile", "CO": "Colombia",
	"PE": "Peru", "VE": "Venezuela", "UY": "Uruguay", "PY": "Paraguay",
	"BO": "Bolivia", "EC": "Ecuador",
	"ES": "Spain", "UK": "United Kingdom", "IE": "Ireland", "FR": "France",
	"DE": "Germany", "IT": "Italy", "NL": "Netherlands", "BE": "Belgium",
	"LU": "Luxembourg", "CH": "Switzerland", "AT": "Austria", "PT": "Portugal",
	"SE": "Sweden", "NO": "Norway", "DK": "Denmark", "FI": "Finland", "IS": "Iceland",
	"PL": "Poland", "CZ": "Czech Republic", "HU": "Hungary", "RO": "Romania",
	"BG": "Bulgaria", "RU": "Russia", "UA": "Ukraine", "EE": "Estonia",
	"LV": "Latvia", "LT": "Lithuania", "SK": "Slovakia", "SI": "Slovenia", "HR": "Croatia",
	"GR": "Greece", "TR": "Turkey",
	"CN": "China", "JP": "Japan", "KR": "South Korea", "HK": "Hong Kong", "TW": "Taiwan",
	"SG": "Singapore", "MY": "Malaysia", "TH": "Thailand", "VN": "Vietnam",
	"PH": "Philippines", "ID": "Indonesia",
	"IN": "India",
	"AE": "United Arab Emirates", "SA": "Saudi Arabia", "IL": "Israel",
	"QA": "Qatar", "KW": "Kuwait",
	"KZ": "Kazakhstan",
	"MA": "Morocco", "EG": "Egypt", "DZ": "Algeria", "TN": "Tunisia",
	"NG": "Nigeria", "GH": "Ghana", "KE": "Kenya", "ET": "Ethiopia",
	"ZA": "South Africa",
	"AU": "Australia", "NZ": "New Zealand",
}

// countryZones maps a country code to its IANA timezone name. It is the single
// source of truth for the whole backend: user records cache the result at save
// time and every other component reads the cached value.
var countryZones = map[string]string{
	"US": "America/New_York",
	"CA": "America/Toronto",
	"MX": "America/Mexico_City",
	"CR": "America/Costa_Rica",
	"PA": "America/Panama",
	"GT": "America/Guatemala",
	"HN": "America/Tegucigalpa",
	"SV": "America/El_Salvador",
	"NI": "America/Managua",
	"DO": "America/Santo_Domingo",
	"PR": "America/Puerto_Rico",
	"BR": "America/Sao_Paulo",
	"AR": "America/Argentina/Buenos_Aires",
	"CL": "America/Santiago",
	"CO": "America/Bogota",
	"PE": "America/Lima",
	"VE": "America/Caracas",
	"UY": "America/Montevideo",
	"PY": "America/Asuncion",
	"BO": "America/La_Paz",
	"EC": "America/Guayaquil",
	"ES": "Europe/Madrid",
	"UK": "Europe/London",
	"IE": "Europe/Dublin",
	"FR": "Europe/Paris",
	"DE": "Europe/Berlin",
	"IT": "Europe/Rome",
	"NL": "Europe/Amsterdam",
	"BE": "Europe/Brussels",
	"LU": "Europe/Luxembourg",
	"CH": "Europe/Zurich",
	"AT": "Europe/Vienna",
	"PT": "Europe/Lisbon",
	"SE": "Europe/Stockholm",
	"NO": "Europe/Oslo",
	"DK": "Europe/Copenhagen",
	"FI": "Europe/Helsinki",
	"IS": "Atlantic/Reykjavik",
	"PL": "Europe/Warsaw",
	"CZ": "Europe/Prague",
	"HU": "Europe/Budapest",
	"RO": "Europe/Bucharest",
	"BG": "Europe/Sofia",
	"RU": "Europe/Moscow",
	"UA": "Europe/Kiev",
	"EE": "Europe/Tallinn",
	"LV": "Europe/Riga",
	"LT": "Europe/Vilnius",
	"SK": "Europe/Bratislava",
	"SI": "Europe/Ljubljana",
	"HR": "Europe/Zagreb",
	"GR": "Europe/Athens",
	"TR": "Europe/Istanbul",
	"CN": "Asia/Shanghai",
	"JP": "Asia/Tokyo",
	"KR": "Asia/Seoul",
	"HK": "Asia/Hong_Kong",
	"TW": "Asia/Taipei",
	"SG": "Asia/Singapore",
	"MY": "Asia/Kuala_Lumpur",
	"TH": "Asia/Bangkok",
	"VN": "Asia/Ho_Chi_Minh",
	"PH": "Asia/Manila",
	"ID": "Asia/Jakarta",
	"IN": "Asia/Kolkata",
	"AE": "Asia/Dubai",
	"SA": "Asia/Riyadh",
	"IL": "Asia/Jerusalem",
	"QA": "Asia/Qatar",
	"KW": "Asia/Kuwait",
	"KZ": "Asia/Almaty",
	"MA": "Africa/Casablanca",
	"EG": "Africa/Cairo",
	"DZ": "Africa/Algiers",
	"TN": "Africa/Tunis",
	"NG": "Africa/Lagos",
	"GH": "Africa/Accra",
	"KE": "Africa/Nairobi",
	"ET": "Africa/Addis_Ababa",
	"ZA": "Africa/Johannesburg",
	"AU": "Australia/Sydney",
	"NZ": "Pacific/Auckland",
}

// Lookup returns the IANA timezone for a country code, falling back to UTC
// for unknown codes.
func Lookup(country string) string {
	if tz, ok := countryZones[country]; ok {
		return tz
	}
	return "UTC"
}

// IsSupported reports whether the country code is in the supported list.
func IsSupported(country string) bool {
	_, ok := countryZones[country]
	return ok
}

// Countries returns the supported country list sorted by code.
func Countries() []Country {
	out := make([]Country, 0, len(countryNames))
	for code, name := range countryNames {
		out = append(out, Country{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Zones returns the distinct timezone names used by the table, sorted.
func Zones() []string {
	seen := make(map[string]bool, len(countryZones))
	for _, tz := range countryZones {
		seen[tz] = true
	}
	out := make([]string, 0, len(seen))
	for tz := range seen {
		out = append(out, tz)
	}
	sort.Strings(out)
	return out
}
