package biosample

import "github.com/oceanomics/faire2ncbi/internal/faire"

// latLonColumn combines two FAIRe columns and is handled specially by
// the converter.
const latLonColumn = "*lat_lon"

// FAIRe source columns feeding *lat_lon.
const (
	latSource = "decimalLatitude"
	lonSource = "decimalLongitude"
)

// mimarksToFAIRe is the deterministic pairing of MIMARKS survey water
// columns to FAIRe sample metadata columns. Columns absent from the
// map, and *lat_lon, stay blank unless a later interactive step fills
// them.
var mimarksToFAIRe = map[string]string{
	"*sample_name":         "samp_name",
	"*organism":            "organism",
	"*collection_date":     "eventDate",
	"*depth":               "maximumDepthInMeters",
	"*env_broad_scale":     "env_broad_scale",
	"*env_local_scale":     "env_local_scale",
	"*env_medium":          "env_medium",
	"*geo_loc_name":        "geo_loc_name",
	"alkalinity":           "tot_alkalinity",
	"ammonium":             "ammonium",
	"chlorophyll":          "chlorophyll",
	"collection_method":    "samp_collect_method",
	"diss_inorg_carb":      "diss_inorg_carb",
	"diss_inorg_nitro":     "diss_inorg_nitro",
	"diss_org_carb":        "diss_org_carb",
	"diss_org_nitro":       "diss_org_nitro",
	"diss_oxygen":          "diss_oxygen",
	"elev":                 "elev",
	"light_intensity":      "light_intensity",
	"neg_cont_type":        "neg_cont_type",
	"nitrate":              "nitrate",
	"nitrite":              "nitrite",
	"nitro":                "nitro",
	"org_carb":             "org_carb",
	"org_matter":           "org_matter",
	"org_nitro":            "org_nitro",
	"part_org_carb":        "part_org_carb",
	"part_org_nitro":       "part_org_nitro",
	"ph":                   "ph",
	"phosphate":            "phosphate",
	"pos_cont_type":        "pos_cont_type",
	"pressure":             "pressure",
	"salinity":             "salinity",
	"samp_collect_device":  "samp_collect_device",
	"samp_mat_process":     "samp_mat_process",
	"samp_size":            "samp_size",
	"samp_store_dur":       "samp_store_dur",
	"samp_store_loc":       "samp_store_loc",
	"samp_store_temp":      "samp_store_temp",
	"samp_vol_we_dna_ext":  "samp_vol_we_dna_ext",
	"silicate":             "silicate",
	"size_frac":            "size_frac",
	"size_frac_low":        "size_frac_low",
	"suspend_part_matter":  "suspend_part_matter",
	"temp":                 "temp",
	"tidal_stage":          "tidal_stage",
	"tot_depth_water_col":  "tot_depth_water_col",
	"tot_diss_nitro":       "tot_diss_nitro",
	"tot_inorg_nitro":      "tot_inorg_nitro",
	"tot_nitro":            "tot_nitro",
	"tot_part_carb":        "tot_part_carb",
	"turbidity":            "turbidity",
	"water_current":        "water_current",
}

// Mapping resolves each template column to its FAIRe source, skipping
// pairings whose source column is missing from the workbook.
type Mapping struct {
	// Columns preserves the template column order.
	Columns []string
	// Source holds the FAIRe column feeding each output column; absent
	// entries stay blank. *lat_lon is present when both coordinate
	// columns exist.
	Source map[string]string
}

// BuildMapping pairs template columns against an actual sample table.
func BuildMapping(templateColumns []string, sample *faire.Table) *Mapping {
	m := &Mapping{
		Columns: append([]string(nil), templateColumns...),
		Source:  make(map[string]string),
	}
	for _, col := range templateColumns {
		if col == latLonColumn {
			if sample.HasColumn(latSource) && sample.HasColumn(lonSource) {
				m.Source[col] = latLonColumn
			}
			continue
		}
		src, ok := mimarksToFAIRe[col]
		if ok && sample.HasColumn(src) {
			m.Source[col] = src
		}
	}
	return m
}

// UsedSourceColumns returns the FAIRe columns consumed by the mapping,
// for finding leftover columns to offer as additions.
func (m *Mapping) UsedSourceColumns() map[string]bool {
	used := make(map[string]bool)
	for _, src := range m.Source {
		if src == latLonColumn {
			used[latSource] = true
			used[lonSource] = true
			continue
		}
		used[src] = true
	}
	return used
}
