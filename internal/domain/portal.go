package domain

import "sort"

// GlossaryEntry is one row of a portal's unit-of-measurement guide.
type GlossaryEntry struct {
	Sensor    string
	Shortname string
	Property  string
	Units     string
}

// PortalProfile is the static reference data for one CHORDS deployment: its
// canonical column ordering and its unit glossary. Profiles are immutable
// and looked up by name.
type PortalProfile struct {
	Name string

	// FieldOrder is the canonical ordering applied to discovered columns.
	// Fields absent from the list sort to the end, stable among themselves.
	FieldOrder []string

	Glossary []GlossaryEntry
}

// SortFields orders field names by the portal's canonical ordering. The
// input slice is not modified.
func (p PortalProfile) SortFields(fields []string) []string {
	rank := make(map[string]int, len(p.FieldOrder))
	for i, f := range p.FieldOrder {
		rank[f] = i
	}

	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iKnown := rank[sorted[i]]
		rj, jKnown := rank[sorted[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		default:
			return false
		}
	})
	return sorted
}

// LookupPortal returns the profile for a portal name. Names are case
// sensitive and must match the fixed deployment set.
func LookupPortal(name string) (PortalProfile, bool) {
	p, ok := portals[name]
	return p, ok
}

// PortalNames returns the recognized portal names in their documented order.
func PortalNames() []string {
	return []string{
		"Barbados", "Trinidad", "3D PAWS", "3D Calibration",
		"FEWSNET", "Kenya", "Cayman Islands", "Dominican Republic",
	}
}

var portals = map[string]PortalProfile{
	"Barbados": {
		Name: "Barbados",
		FieldOrder: []string{
			"t1", "t2", "t3", "rh1", "msl1", "sp1", "ws", "wd", "rain", "vis1", "ir1", "uv1",
		},
		Glossary: []GlossaryEntry{
			{"HTU21D_T", "t1", "Temperature", "degrees C"},
			{"BMP280_T", "t2", "Temperature", "degrees C"},
			{"MCP9808_T", "t3", "Temperature", "degrees C"},
			{"HTU21D_RH", "rh1", "Humidity Value", "percent %"},
			{"BMP280_SLP", "msl1", "Air Pressure Value", "millibar mbar"},
			{"BMP280_SP", "sp1", "Air Pressure Value", "millibar mbar"},
			{"windspeed", "ws", "Wind Speed", "meters per second m/s"},
			{"winddirection", "wd", "Wind Direction", "degrees N degN"},
			{"precipitation", "rain", "Precipitation", "millimeter mm"},
			{"SI1145_VIS", "vis1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_IR", "ir1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_UV", "uv1", "Downwelling Irradiance", "watts per square meter W/m^2"},
		},
	},
	"Trinidad": {
		Name: "Trinidad",
		FieldOrder: []string{
			"bt1", "mt1", "ht1", "bp1", "bh1", "hh1", "ws", "wd", "wg", "wgd",
			"rg", "sv1", "si1", "su1", "bcs", "bpc", "cfr", "css",
		},
		Glossary: []GlossaryEntry{
			{"BMX280 Temperature", "bt1", "Temperature", "degrees C"},
			{"MCP9808 Temperature", "mt1", "Temperature", "degrees C"},
			{"HTU21D Temperature", "ht1", "Temperature", "degrees C"},
			{"BMX280 Pressure", "bp1", "Air Pressure Value", "hectopascal hPa"},
			{"BMX280 Relative Humidity", "bh1", "Humidity Value", "percent %"},
			{"HTU21D Relative Humidity", "hh1", "Humidity Value", "percent %"},
			{"Wind Speed", "ws", "Wind Speed", "meters per second m/s"},
			{"Wind Direction", "wd", "Wind Direction", "degrees N degN"},
			{"Wind Gust", "wg", "Wind Speed", "meters per second m/s"},
			{"Wind Gust Direction", "wgd", "Wind Direction", "degrees N degN"},
			{"Rain Gauge", "rg", "Precipitation", "millimeter mm"},
			{"SI1145 Visible", "sv1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145 Infrared", "si1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145 Ultraviolet", "su1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"Battery Current State", "bcs", "State of Health", "count #"},
			{"Battery Percent Charge", "bpc", "State of Health", "percent %"},
			{"Battery Charge Fault Register", "cfr", "State of Health", "count #"},
			{"Cell Signal Strength", "css", "State of Health", "percent %"},
		},
	},
	"3D PAWS": {
		Name: "3D PAWS",
		FieldOrder: []string{
			"t1", "t2", "t3", "ht1", "ht2", "bt1", "mt1", "st1", "htu21d_temp", "mcp9808", "bmp_temp", "bme_temp",
			"bp1", "sp1", "msl1", "bmp_slp", "bme_slp", "bmp_pressure", "bme_pressure",
			"bmp_altitude",
			"ws", "wind_speed", "wd", "wind_direction", "wg", "wgd",
			"hh1", "hh2", "rh1", "bh1", "sh1", "htu21d_humidity", "bme_humidity",
			"rain", "rg", "rgt", "rgp", "rgds",
			"h1", "wlo", "wld", "wlm", "wlr",
			"sg",
			"st2", "st3", "sm1", "sm2", "sm3",
			"sv1", "si1", "su1", "vis1", "ir1", "uv1", "si1145_vis", "si1145_ir", "si1145_uv",
			"si1145_vis1", "si1145_ir1", "si1145_uv1", "si1145_vis2", "si1145_ir2", "si1145_uv2",
			"si1145_vis3", "si1145_ir3", "si1145_uv3", "si1145_vis4", "si1145_ir4", "si1145_uv4",
			"solar1", "solar2", "lx",
			"bcs", "bpc", "cfr", "bv", "css", "hth",
		},
		Glossary: []GlossaryEntry{
			{"HTU21D_T", "t1", "Temperature", "degrees C"},
			{"HTU21D Temperature", "ht1", "Temperature", "degrees C"},
			{"HIH Temperature 2", "ht2", "Temperature", "degrees C"},
			{"HTU21D_T", "htu21d_temp", "Temperature", "degrees C"},
			{"BMP280_T", "t2", "Temperature", "degrees C"},
			{"BMP280_T", "bmp_temp", "Temperature", "degrees C"},
			{"BME_T", "bme_temp", "Temperature", "degrees C"},
			{"BMX280 Temperature 1", "bt1", "Temperature", "degrees C"},
			{"MCP9808_T", "t3", "Temperature", "degrees C"},
			{"MCP9808_T", "mcp9808", "Temperature", "degrees C"},
			{"MCP9808 Temperature 1", "mt1", "Temperature", "degrees C"},
			{"SHT Temperature", "st1", "Temperature", "degrees C"},
			{"BMP280_ALT", "bmp_altitude", "Altitude", "meter m"},
			{"BMP280_SLP", "msl1", "Air Pressure Value", "millibar mbar"},
			{"BMP280_SLP", "bmp_slp", "Air Pressure Value", "hectopascal hPa"},
			{"BMP280_SP", "sp1", "Air Pressure Value", "millibar mbar"},
			{"BMP280_SP", "bmp_pressure", "Air Pressure Value", "hectopascal hPa"},
			{"BME_StationPres", "bme_pressure", "Air Pressure Value", "hectopascal hPa"},
			{"BME_SeaLevelPres", "bme_slp", "Air Pressure Value", "hectopascal hPa"},
			{"BMX280 Pressure 1", "bp1", "Air Pressure Value", "hectopascal hPa"},
			{"Wind speed", "ws", "Wind Speed", "meters per second m/s"},
			{"windspeed", "wind_speed", "Wind Speed", "meters per second m/s"},
			{"Wind direction", "wd", "Wind Direction", "degrees N degN"},
			{"winddirection", "wind_direction", "Wind Direction", "degrees N degN"},
			{"Wind Gust", "wg", "Wind Speed", "meters per second m/s"},
			{"Wind Gust Direction", "wgd", "Wind Direction", "degrees N degN"},
			{"HTU21D_RH", "rh1", "Humidity Value", "percent %"},
			{"HTU21D_RH", "htu21d_humidity", "Humidity Value", "percent %"},
			{"BMX280 Relative Humidity", "bh1", "Humidity Value", "percent %"},
			{"BME_RH", "bme_humidity", "Humidity Value", "percent %"},
			{"HTU21D Relative Humidity", "hh1", "Humidity Value", "percent %"},
			{"HIH Humidity 2", "hh2", "Humidity Value", "percent %"},
			{"Relative Humidity", "sh1", "Humidity Value", "percent %"},
			{"Rain", "rain", "Precipitation", "millimeter mm"},
			{"Rain Gauge Total Today", "rgt", "Precipitation", "millimeter mm"},
			{"Station Rain Gauge", "rg", "Precipitation", "millimeter mm"},
			{"Rain Gauge Total Prior", "rgp", "Precipitation", "millimeter mm"},
			{"Rain_Gauge_Delta_Seconds", "rgds", "Time Measurement Accuracy", "seconds s"},
			{"Water level", "h1", "Datum", "millimeter mm"},
			{"Water level outliers", "wlo", "Number of Samples", "count #"},
			{"Water level deviation", "wld", "Deviation", "millimeter mm"},
			{"Water level median", "wlm", "Datum", "millimeter mm"},
			{"Water level raw", "wlr", "Datum", "millimeter mm"},
			{"Snow_Depth", "sg", "Datum", "centimeter cm"},
			{"Soil Temperature 2", "st2", "Temperature", "degrees C"},
			{"Soil Temperature 3", "st3", "Temperature", "degrees C"},
			{"Soil Moisture 1", "sm1", "Data Point", "percent saturation % Sat"},
			{"Soil Moisture 2", "sm2", "Data Point", "kilopascal kPa"},
			{"Soil Moisture 3", "sm3", "Data Point", "percent saturation % Sat"},
			{"SI1145 Visible 1", "sv1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145 Infrared 1", "si1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145 Ultraviolet 1", "su1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_VIS", "vis1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_IR", "ir1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_UV", "uv1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_VIS", "si1145_vis", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_IR", "si1145_ir", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SI1145_UV", "si1145_uv", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SP_215", "solar1", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"SP_212", "solar2", "Downwelling Irradiance", "watts per square meter W/m^2"},
			{"VEML770 light sensor", "lx", "Downwelling Irradiance", "count #"},
			{"Battery Current State", "bcs", "State of Health", "count #"},
			{"Battery Percent Charge", "bpc", "State of Health", "percent %"},
			{"Battery Charge Fault Register", "cfr", "State of Health", "count #"},
			{"Battery Voltage", "bv", "State of Health", "volts V"},
			{"Cell Signal Strength", "css", "State of Health", "percent %"},
			{"Health 16bits", "hth", "State of Health", "count #"},
		},
	},
	"3D Calibration": {
		Name: "3D Calibration",
		FieldOrder: []string{
			"htu21d_temp", "bmp_temp", "mcp9808", "sht31d_temp", "sht31d_humidity", "htu21d_humidity",
			"bmp_slp", "bmp_pressure", "rain", "wind_speed", "wind_direction", "wg", "wgd",
			"si1145_vis", "si1145_ir", "si1145_uv", "bpc",
		},
		Glossary: []GlossaryEntry{
			{"HTU21D_T", "htu21d_temp", "Temperature", "degrees C"},
			{"BMP280_T", "bmp_temp", "Temperature", "degrees C"},
			{"MCP9808_T", "mcp9808", "Temperature", "degrees C"},
			{"SHT31D_T", "sht31d_temp", "Temperature", "degrees C"},
			{"SHT31D_RH", "sht31d_humidity", "Humidity Value", "percent %"},
			{"HTU21D_RH", "htu21d_humidity", "Humidity Value", "percent %"},
			{"BMP280_SLP", "bmp_slp", "Air Pressure Value", "millibar mbar"},
			{"BMP280_SP", "bmp_pressure", "Air Pressure Value", "millibar mbar"},
			{"rain", "rain", "Precipitation", "millimeter mm"},
			{"windspeed", "wind_speed", "Wind Speed", "meters per second m/s"},
			{"winddirection", "wind_direction", "Wind Direction", "degrees N degN"},
			{"Wind Gust", "wg", "Wind Speed", "meters per second m/s"},
			{"Wind Gust Direction", "wgd", "Wind Direction", "degrees N degN"},
			{"SI1145_VIS", "si1145_vis", "Radiance", "watts per square meter W/m^2"},
			{"SI1145_IR", "si1145_ir", "Radiance", "watts per square meter W/m^2"},
			{"SI1145_UV", "si1145_uv", "Radiance", "watts per square meter W/m^2"},
			{"Battery Percent Charge", "bpc", "State of Health", "percent %"},
		},
	},
	"FEWSNET": {
		Name: "FEWSNET",
		FieldOrder: []string{
			"rg1", "rg2", "rgt1", "rgt2", "rgp1", "rgp2",
			"hi", "wbt", "wbgt",
			"bt1", "bt2", "ht1", "ht2", "st1", "mt1",
			"bh1", "bh2", "hh1", "hh2", "sh1",
			"bp1", "bp2",
			"hth", "bpc", "bcs", "css", "cfr",
		},
		Glossary: []GlossaryEntry{
			{"BMX Temperature 1", "bt1", "Temperature", "degrees C"},
			{"BMX Temperature 2", "bt2", "Temperature", "degrees C"},
			{"HTU Temperature 1", "ht1", "Temperature", "degrees C"},
			{"HIH Temperature", "ht2", "Temperature", "degrees C"},
			{"SHT Temperature", "st1", "Temperature", "degrees C"},
			{"MCP Temperature 1", "mt1", "Temperature", "degrees C"},
			{"BMX Humidity 1", "bh1", "Humidity Value", "percent %"},
			{"BMX Humidity 2", "bh2", "Humidity Value", "percent %"},
			{"HTU Humidity 1", "hh1", "Humidity Value", "percent %"},
			{"HIH Humidity", "hh2", "Humidity Value", "percent %"},
			{"SHT Humidity", "sh1", "Humidity Value", "percent %"},
			{"BMX Pressure 1", "bp1", "Air Pressure Value", "hectopascal hPa"},
			{"BMX Pressure 2", "bp2", "Air Pressure Value", "hectopascal hPa"},
			{"Rain Gauge 1", "rg1", "Precipitation", "millimeter mm"},
			{"Rain Gauge 2", "rg2", "Precipitation", "millimeter mm"},
			{"Rain Gauge 1 Total Today", "rgt1", "Precipitation", "millimeter mm"},
			{"Rain Gauge 2 Total Today", "rgt2", "Precipitation", "millimeter mm"},
			{"Rain Gauge 1 Total Prior", "rgp1", "Precipitation", "millimeter mm"},
			{"Rain Gauge 2 Total Prior", "rgp2", "Precipitation", "millimeter mm"},
			{"Health", "hth", "State of Health", "count #"},
			{"Battery Percent Charge", "bpc", "State of Health", "percent %"},
			{"Battery Current State", "bcs", "State of Health", "count #"},
			{"Cell Signal Strength", "css", "State of Health", "percent %"},
			{"Battery Charge Fault Register", "cfr", "State of Health", "count #"},
		},
	},
	// Kenya and Cayman Islands are recognized deployments whose canonical
	// orderings have not been published yet; their fields keep discovery
	// order and no glossary is emitted.
	"Kenya":          {Name: "Kenya"},
	"Cayman Islands": {Name: "Cayman Islands"},
	"Dominican Republic": {
		Name: "Dominican Republic",
		FieldOrder: []string{
			"ht1", "bt1", "mt1", "hh1", "bmp_slp", "bp1", "rg", "ws", "wd", "wg", "wgd",
			"sv1", "si1", "su1", "hth", "bpc",
		},
		Glossary: []GlossaryEntry{
			{"BMP280_T", "bt1", "Temperature", "degrees C"},
			{"HTU21D_T", "ht1", "Temperature", "degrees C"},
			{"MCP9808", "mt1", "Temperature", "degrees C"},
			{"HTU21D_RH", "hh1", "Humidity Value", "percent %"},
			{"BMP280_SLP", "bmp_slp", "Air Pressure Value", "hectopascal hPa"},
			{"BMP280_SP", "bp1", "Air Pressure Value", "hectopascal hPa"},
			{"Precipitation", "rg", "Precipitation", "millimeter mm"},
			{"Wind Speed", "ws", "Wind Speed", "meters per second m/s"},
			{"Wind Direction", "wd", "Wind Direction", "degrees N degN"},
			{"Wind Gust", "wg", "Wind Speed", "meters per second m/s"},
			{"Wind Gust Direction", "wgd", "Wind Direction", "degrees N degN"},
			{"SI1145_VIS", "sv1", "Radiance", "watts per square meter W/m^2"},
			{"SI1145_IR", "si1", "Radiance", "watts per square meter W/m^2"},
			{"SI1145_UV", "su1", "Radiance", "watts per square meter W/m^2"},
			{"Health", "hth", "State of Health", "dimensionless"},
			{"Battery Percent Charge", "bpc", "State of Health", "percent %"},
		},
	},
}
