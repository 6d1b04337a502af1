package sra

import "strings"

// libraryFieldOrder fixes the order the three library fields are
// configured in.
var libraryFieldOrder = []string{"library_strategy", "library_source", "library_selection"}

// libraryFieldDefaults hold the values used for metabarcoding
// submissions unless the user overrides them.
var libraryFieldDefaults = map[string]string{
	"library_strategy":  "AMPLICON",
	"library_source":    "METAGENOMIC",
	"library_selection": "PCR",
}

// allowedLibraryValues are the controlled vocabularies NCBI accepts
// for each library field.
var allowedLibraryValues = map[string][]string{
	"library_strategy": {
		"WGA", "WGS", "WXS", "RNA-Seq", "miRNA-Seq", "WCS", "CLONE", "POOLCLONE",
		"AMPLICON", "CLONEEND", "FINISHING", "ChIP-Seq", "MNase-Seq",
		"DNase-Hypersensitivity", "Bisulfite-Seq", "Tn-Seq", "EST", "FL-cDNA",
		"CTS", "MRE-Seq", "MeDIP-Seq", "MBD-Seq", "Synthetic-Long-Read",
		"ATAC-seq", "ChIA-PET", "FAIRE-seq", "Hi-C", "ncRNA-Seq", "RAD-Seq",
		"RIP-Seq", "SELEX", "ssRNA-seq", "Targeted-Capture",
		"Tethered Chromatin Conformation Capture", "DIP-Seq", "GBS",
		"Inverse rRNA", "NOMe-Seq", "Ribo-seq", "VALIDATION", "OTHER",
	},
	"library_source": {
		"GENOMIC", "TRANSCRIPTOMIC", "METAGENOMIC", "METATRANSCRIPTOMIC",
		"SYNTHETIC", "VIRAL RNA", "GENOMIC SINGLE CELL",
		"TRANSCRIPTOMIC SINGLE CELL", "OTHER",
	},
	"library_selection": {
		"RANDOM", "PCR", "RANDOM PCR", "RT-PCR", "HMPR", "MF", "CF-S", "CF-M",
		"CF-H", "CF-T", "MDA", "MSLL", "cDNA", "ChIP", "MNase", "DNAse",
		"Hybrid Selection", "Reduced Representation", "Restriction Digest",
		"5-methylcytidine antibody", "MBD2 protein methyl-CpG binding domain",
		"CAGE", "RACE", "size fractionation", "Padlock probes capture method",
		"other", "unspecified", "cDNA_oligo_dT", "cDNA_randomPriming",
		"Inverse rRNA", "Oligo-dT", "PolyA", "repeat fractionation",
	},
}

// allowedPlatforms lists the SRA platform vocabulary.
var allowedPlatforms = []string{
	"_LS454", "ABI_SOLID", "BGISEQ", "CAPILLARY", "COMPLETE_GENOMICS",
	"DNBSEQ", "ELEMENT", "GENAPSYS", "GENEMIND", "HELICOS", "ILLUMINA",
	"ION_TORRENT", "OXFORD_NANOPORE", "PACBIO_SMRT", "TAPESTRI",
	"ULTIMA", "VELA_DIAGNOSTICS",
}

// platformInstruments maps each platform to its accepted instrument
// models, used for suggestions during manual entry.
var platformInstruments = map[string][]string{
	"_LS454":  {"454 GS", "454 GS 20", "454 GS FLX", "454 GS FLX+", "454 GS FLX Titanium", "454 GS Junior"},
	"ILLUMINA": {
		"HiSeq X Five", "HiSeq X Ten", "Illumina Genome Analyzer", "Illumina Genome Analyzer II",
		"Illumina Genome Analyzer IIx", "Illumina HiScanSQ", "Illumina HiSeq 1000", "Illumina HiSeq 1500",
		"Illumina HiSeq 2000", "Illumina HiSeq 2500", "Illumina HiSeq 3000", "Illumina HiSeq 4000",
		"Illumina HiSeq X", "Illumina MiSeq", "Illumina MiniSeq", "Illumina NovaSeq 6000",
		"Illumina NovaSeq X", "Illumina NovaSeq X Plus", "Illumina iSeq 100", "NextSeq 1000",
		"NextSeq 2000", "NextSeq 500", "NextSeq 550",
	},
	"HELICOS": {"Helicos HeliScope"},
	"ABI_SOLID": {
		"AB 5500 Genetic Analyzer", "AB 5500xl Genetic Analyzer", "AB 5500x-Wl Genetic Analyzer",
		"AB SOLiD 3 Plus System", "AB SOLiD 4 System", "AB SOLiD 4hq System", "AB SOLiD PI System",
		"AB SOLiD System", "AB SOLiD System 2.0", "AB SOLiD System 3.0",
	},
	"COMPLETE_GENOMICS": {"Complete Genomics"},
	"PACBIO_SMRT":       {"PacBio RS", "PacBio RS II", "Revio", "Sequel", "Sequel II", "Sequel IIe", "Onso"},
	"ION_TORRENT": {
		"Ion Torrent PGM", "Ion Torrent Proton", "Ion Torrent S5 XL", "Ion Torrent S5",
		"Ion Torrent Genexus", "Ion GeneStudio S5", "Ion GeneStudio S5 Plus", "Ion GeneStudio S5 Prime",
	},
	"CAPILLARY": {
		"AB 310 Genetic Analyzer", "AB 3130 Genetic Analyzer", "AB 3130xL Genetic Analyzer",
		"AB 3500 Genetic Analyzer", "AB 3500xL Genetic Analyzer", "AB 3730 Genetic Analyzer",
		"AB 3730xL Genetic Analyzer",
	},
	"OXFORD_NANOPORE":  {"GridION", "MinION", "PromethION"},
	"BGISEQ":           {"BGISEQ-50", "BGISEQ-500", "MGISEQ-2000RS"},
	"DNBSEQ":           {"DNBSEQ-G400", "DNBSEQ-G50", "DNBSEQ-T7", "DNBSEQ-G400 FAST"},
	"ELEMENT":          {"Element AVITI", "Onso"},
	"GENAPSYS":         {"GS111", "FASTASeq 300"},
	"GENEMIND":         {"GenoCare 1600", "GenoLab M"},
	"TAPESTRI":         {"Tapestri"},
	"ULTIMA":           {"UG 100"},
	"VELA_DIAGNOSTICS": {"Sentosa SQ301"},
}

// FiletypeFromFilename infers the SRA filetype from a data file name.
// Compression suffixes are stripped before matching; unrecognized
// names default to fastq, the overwhelmingly common case.
func FiletypeFromFilename(filename string) string {
	name := strings.ToLower(strings.TrimSpace(filename))
	if name == "" {
		return ""
	}

	// fastq.gz is Nanopore native output in the upstream pipelines,
	// so it is matched before the compression suffix is stripped.
	if strings.HasSuffix(name, ".fast5") || strings.HasSuffix(name, ".fastq.gz") {
		return "OxfordNanopore_native"
	}

	for _, suffix := range []string{".gz", ".bz2", ".zip"} {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}

	switch {
	case strings.HasSuffix(name, ".fastq"), strings.HasSuffix(name, ".fq"):
		return "fastq"
	case strings.HasSuffix(name, ".bam"):
		return "bam"
	case strings.HasSuffix(name, ".srf"):
		return "srf"
	case strings.HasSuffix(name, ".sff"):
		return "sff"
	case strings.HasSuffix(name, ".h5"), strings.HasSuffix(name, ".hdf5"):
		return "PacBio_HDF5"
	case strings.HasSuffix(name, ".454"):
		return "454_native"
	case strings.HasSuffix(name, ".csfasta"), strings.HasSuffix(name, ".qual"):
		return "SOLiD_native"
	case strings.HasSuffix(name, ".cif"), strings.HasSuffix(name, ".cg"):
		return "CompleteGenomics_native"
	case strings.HasSuffix(name, ".hel"):
		return "Helicos_native"
	}

	switch {
	case strings.Contains(name, "fastq"), strings.Contains(name, "fq"):
		return "fastq"
	case strings.Contains(name, "bam"):
		return "bam"
	case strings.Contains(name, "pacbio"):
		return "PacBio_HDF5"
	case strings.Contains(name, "nanopore"), strings.Contains(name, "ont"):
		return "OxfordNanopore_native"
	case strings.Contains(name, "454"):
		return "454_native"
	case strings.Contains(name, "solid"):
		return "SOLiD_native"
	case strings.Contains(name, "complete"), strings.Contains(name, "genomics"):
		return "CompleteGenomics_native"
	case strings.Contains(name, "helicos"):
		return "Helicos_native"
	}
	return "fastq"
}
