package vocab

// BuiltinVersion identifies the compiled-in marker table.
const BuiltinVersion = "builtin-2025.11.1"

const (
	PanelIngredient = "INGREDIENT"
	PanelTox        = "TOX"
	PanelChemistry  = "CHEM"
	PanelOxidative  = "OXSTRESS"
	PanelMethyl     = "METHYL"
	PanelGenomics   = "GENO"
)

type row struct {
	id      string
	name    string
	aliases []string
	tox     float64
	domains map[Domain]float64
	custom  bool
}

func m(id, name string, aliases ...string) row {
	return row{id: id, name: name, aliases: aliases}
}

func (r row) weighted(tox float64, domains map[Domain]float64) row {
	r.tox = tox
	r.domains = domains
	r.custom = true
	return r
}

type group struct {
	panel   string
	tox     float64
	domains map[Domain]float64
	rows    []row
}

func (g group) definitions() []MarkerDefinition {
	out := make([]MarkerDefinition, 0, len(g.rows))
	for _, r := range g.rows {
		tox, domains := g.tox, g.domains
		if r.custom {
			tox, domains = r.tox, r.domains
		}
		d := MarkerDefinition{
			ID:             r.id,
			Name:           r.name,
			Panel:          g.panel,
			ToxicityWeight: tox,
			Domains:        make(map[Domain]float64, len(domains)),
			Aliases:        append([]string(nil), r.aliases...),
		}
		for k, w := range domains {
			d.Domains[k] = w
		}
		out = append(out, d)
	}
	return out
}

type dw = map[Domain]float64

// Builtin returns a fresh copy of the compiled-in vocabulary. Consumer
// ingredient hazards are declared first so their aliases take precedence in
// substring matching.
func Builtin() MarkerSet {
	var defs []MarkerDefinition
	for _, g := range builtinGroups {
		defs = append(defs, g.definitions()...)
	}
	return MarkerSet{Version: BuiltinVersion, Markers: defs}
}

var builtinGroups = []group{
	// Consumer product ingredients
	{panel: PanelIngredient, tox: 5, rows: []row{
		m("FRAG", "Fragrance", "parfum", "fragrance (parfum)", "parfum (fragrance)", "perfume").
			weighted(5, dw{DomainPhthalates: 5}),
		m("DEHP", "Di(2-ethylhexyl) Phthalate", "dehp", "bis(2-ethylhexyl) phthalate", "diethylhexyl phthalate").
			weighted(8, dw{DomainPhthalates: 9}),
		m("DBP", "Dibutyl Phthalate", "dbp", "di-n-butyl phthalate").
			weighted(7, dw{DomainPhthalates: 8}),
		m("BBP", "Benzyl Butyl Phthalate", "butyl benzyl phthalate", "bbp").
			weighted(7, dw{DomainPhthalates: 7}),
		m("DEPH", "Diethyl Phthalate").
			weighted(5, dw{DomainPhthalates: 6}),
		m("PTFE", "Polytetrafluoroethylene", "ptfe", "teflon").
			weighted(6, dw{DomainPFAS: 7}),
		m("FLUOROALC", "C9-15 Fluoroalcohol Phosphate", "fluoroalcohol phosphate", "polyfluoroalkyl phosphate").
			weighted(6, dw{DomainPFAS: 7}),
		m("FORM", "Formaldehyde", "formalin", "methylene glycol").
			weighted(8, dw{DomainVOCs: 7}),
		m("DMDM", "DMDM Hydantoin").
			weighted(6, dw{DomainVOCs: 5}),
		m("QUAT15", "Quaternium-15", "quaternium 15").
			weighted(6, dw{DomainVOCs: 5}),
		m("IMID", "Imidazolidinyl Urea").
			weighted(5, dw{DomainVOCs: 4}),
		m("DIAZ", "Diazolidinyl Urea").
			weighted(5, dw{DomainVOCs: 4}),
		m("BRONOPOL", "Bronopol", "2-bromo-2-nitropropane-1,3-diol").
			weighted(5, dw{DomainVOCs: 4}),
		m("TOLU", "Toluene").
			weighted(7, dw{DomainVOCs: 8}),
		m("STYR", "Styrene").
			weighted(6, dw{DomainVOCs: 6, DomainPlastics: 5}),
		m("COALTAR", "Coal Tar", "coal tar dye").
			weighted(8, dw{DomainVOCs: 6}),
		m("PVC", "Polyvinyl Chloride", "pvc").
			weighted(5, dw{DomainPlastics: 7}),
		m("PEG", "Polyethylene Glycol", "peg").
			weighted(3, dw{DomainPlastics: 3}),
		m("TCC", "Triclocarban", "tcc").
			weighted(5, dw{DomainPesticides: 5}),
		m("BHA", "Butylated Hydroxyanisole", "bha"),
		m("BHT", "Butylated Hydroxytoluene", "bht"),
		m("TBHQ", "Tert-Butylhydroquinone", "tbhq"),
		m("OXY", "Oxybenzone", "benzophenone-3").weighted(7, nil),
		m("OCTI", "Octinoxate", "ethylhexyl methoxycinnamate", "octyl methoxycinnamate").weighted(6, nil),
		m("HOMO", "Homosalate"),
		m("HYDROQ", "Hydroquinone").weighted(7, nil),
		m("MIT", "Methylisothiazolinone", "mit").weighted(6, nil),
		m("MCI", "Methylchloroisothiazolinone").weighted(6, nil),
		m("DEA", "Diethanolamine", "dea"),
		m("TEA", "Triethanolamine", "tea").weighted(4, nil),
		m("SLS", "Sodium Lauryl Sulfate", "sls").weighted(4, nil),
		m("SLES", "Sodium Laureth Sulfate", "sles").weighted(3, nil),
		m("SBENZ", "Sodium Benzoate").weighted(3, nil),
		m("NITRITE", "Sodium Nitrite").weighted(5, nil),
		m("ACRYL", "Acrylamide").weighted(6, dw{DomainVOCs: 5}),
		m("TALC", "Talc", "talcum powder").weighted(4, nil),
		m("PHENOXY", "Phenoxyethanol").weighted(4, nil),
	}},

	// Total Tox: mycotoxins
	{panel: PanelTox, tox: 5, domains: dw{DomainMycotoxins: 6}, rows: []row{
		m("AFB1", "Aflatoxin B1").weighted(8, dw{DomainMycotoxins: 9}),
		m("AFB2", "Aflatoxin B2").weighted(7, dw{DomainMycotoxins: 8}),
		m("AFG1", "Aflatoxin G1").weighted(7, dw{DomainMycotoxins: 8}),
		m("AFG2", "Aflatoxin G2").weighted(7, dw{DomainMycotoxins: 8}),
		m("AFM1", "Aflatoxin M1").weighted(7, dw{DomainMycotoxins: 8}),
		m("OTA", "Ochratoxin A").weighted(7, dw{DomainMycotoxins: 8}),
		m("GLIO", "Gliotoxin").weighted(7, dw{DomainMycotoxins: 8}),
		m("MPA", "Mycophenolic Acid"),
		m("STC", "Sterigmatocystin").weighted(7, dw{DomainMycotoxins: 8}),
		m("ZEN", "Zearalenone"),
		m("CTN", "Citrinin"),
		m("DHC", "Dihydrocitrinone"),
		m("CHA", "Chaetoglobosin A"),
		m("ENN_B1", "Enniatin B1"),
		m("ENN_B", "Enniatin B"),
		m("ENN_A1", "Enniatin A1"),
		m("F_B1", "Fumonisin B1", "fumonisins b1"),
		m("F_B2", "Fumonisin B2", "fumonisins b2"),
		m("F_B3", "Fumonisin B3", "fumonisins b3"),
		m("PAT", "Patulin"),
		m("DON", "Deoxynivalenol"),
		m("NIV", "Nivalenol"),
		m("DAS", "Diacetoxyscirpenol"),
		m("T2_TOX", "T-2 Toxin").weighted(7, dw{DomainMycotoxins: 8}),
		m("ROR_A", "Roridin A"),
		m("ROR_E", "Roridin E"),
		m("ROR_L2", "Roridin L-2", "roridin l2"),
		m("SAT_G", "Satratoxin G").weighted(7, dw{DomainMycotoxins: 8}),
		m("SAT_H", "Satratoxin H").weighted(7, dw{DomainMycotoxins: 8}),
		m("VER_A", "Verrucarin A"),
		m("VER_J", "Verrucarin J"),
		m("VERRUCAROL", "Verrucarol"),
	}},

	// Total Tox: heavy metals
	{panel: PanelTox, tox: 5, domains: dw{DomainMetals: 6}, rows: []row{
		m("ALU", "Aluminum", "aluminium", "aluminum chlorohydrate"),
		m("ANT", "Antimony"),
		m("ARS", "Arsenic").weighted(8, dw{DomainMetals: 9}),
		m("BAR", "Barium"),
		m("BER", "Beryllium"),
		m("BIS", "Bismuth").weighted(3, dw{DomainMetals: 4}),
		m("CAD", "Cadmium").weighted(8, dw{DomainMetals: 9}),
		m("CES", "Cesium").weighted(3, dw{DomainMetals: 4}),
		m("GAD", "Gadolinium"),
		m("LEAD", "Lead", "lead acetate").weighted(9, dw{DomainMetals: 10}),
		m("MERC", "Mercury", "thimerosal").weighted(9, dw{DomainMetals: 10}),
		m("NICK", "Nickel"),
		m("PALL", "Palladium").weighted(3, dw{DomainMetals: 4}),
		m("PLAT", "Platinum").weighted(3, dw{DomainMetals: 4}),
		m("TELL", "Tellurium").weighted(3, dw{DomainMetals: 4}),
		m("THAL", "Thallium").weighted(8, dw{DomainMetals: 9}),
		m("THOR", "Thorium").weighted(3, dw{DomainMetals: 4}),
		m("TIN", "Tin").weighted(3, dw{DomainMetals: 4}),
		m("TUNG", "Tungsten").weighted(3, dw{DomainMetals: 4}),
		m("URAN", "Uranium").weighted(8, dw{DomainMetals: 9}),
	}},

	// Total Tox: PFAS
	{panel: PanelTox, tox: 6, domains: dw{DomainPFAS: 7}, rows: []row{
		m("GENX", "GenX", "genx/hpfo-da").weighted(8, dw{DomainPFAS: 9}),
		m("9CL_PFAS", "9-Chlorohexadecafluoro-3-oxanonane-1-sulfonate"),
		m("NADONA", "Dodecafluoro-3H-4,8-dioxanoate", "nadona"),
		m("M2PFOA", "Perfluoro-[1,2-13C2] Octanoic Acid", "m2pfoa").weighted(0, nil),
		m("C13_PFOS", "Perfluoro-1-[1,2,3,4-13C4] Octanesulfonic Acid").weighted(0, nil),
		m("PFHPS", "Perfluoro-1-heptane Sulfonic Acid", "pfhps"),
		m("MPFDA", "Perfluoro-n-[1,2-13C2] Decanoic Acid", "mpfda").weighted(0, nil),
		m("C13_PFHXA", "Perfluoro-n-[1,2-13C2] Hexanoic Acid").weighted(0, nil),
		m("PFBA", "Perfluorobutanoic Acid", "pfba"),
		m("PFDEA", "Perfluorodecanoic Acid", "pfdea", "pfda"),
		m("PFDOA", "Perfluorododecanoic Acid", "pfdoa"),
		m("PFHPA", "Perfluoroheptanoic Acid", "pfhpa"),
		m("PFHXS", "Perfluorohexane Sulfonic Acid", "pfhxs").weighted(8, dw{DomainPFAS: 9}),
		m("PFHXA", "Perfluorohexanoic Acid", "pfhxa"),
		m("PFNA", "Perfluorononanoic Acid", "pfna").weighted(8, dw{DomainPFAS: 9}),
		m("PFOS", "Perfluorooctane Sulfonic Acid", "pfos").weighted(8, dw{DomainPFAS: 9}),
		m("PFOA", "Perfluorooctanoic Acid", "pfoa").weighted(8, dw{DomainPFAS: 9}),
		m("PFPEA", "Perfluoropentanoic Acid", "pfpea"),
		m("PFTEDA", "Perfluorotetradecanoic Acid", "pfteda"),
		m("PFTRDA", "Perfluorotridecanoic Acid", "pftrda"),
		m("PFUNA", "Perfluoroundecanoic Acid", "pfuna"),
	}},

	// Total Tox: environmental phenols
	{panel: PanelTox, rows: []row{
		m("4_NON", "4-Nonylphenol").weighted(5, dw{DomainPlastics: 5}),
		m("BPA", "Bisphenol A", "bpa", "bisphenol-a").weighted(7, dw{DomainPlastics: 8}),
		m("TCS", "Triclosan", "tcs").weighted(6, dw{DomainPesticides: 5}),
	}},

	// Total Tox: herbicides and pesticides
	{panel: PanelTox, tox: 5, domains: dw{DomainPesticides: 6}, rows: []row{
		m("2_4_D", "2,4-Dichlorophenoxyacetic Acid", "2,4-d").weighted(6, dw{DomainPesticides: 7}),
		m("ATRA", "Atrazine").weighted(6, dw{DomainPesticides: 7}),
		m("ATRA_M", "Atrazine Mercapturate").weighted(6, dw{DomainPesticides: 7}),
		m("GLYP", "Glyphosate").weighted(6, dw{DomainPesticides: 7}),
		m("DDA", "2,2-bis(4-Chlorophenyl) Acetic Acid", "2,2-bis(4-chlorophenyl)acetic acid",
			"2,2-bis (4-chlorophenyl) acetic acid", "dda", "p,p-dda"),
		m("3PBA", "3-Phenoxybenzoic Acid", "3pba", "3-pba"),
		m("DEP", "Diethyl Phosphate", "dep"),
		m("DEDTP", "Diethyldithiophosphate", "dedtp"),
		m("DETP", "Diethylthiophosphate", "detp"),
		m("DMP", "Dimethyl Phosphate", "dmp"),
		m("DMDTP", "Dimethyldithiophosphate", "dmdtp"),
		m("DMTP", "Dimethylthiophosphate", "dmtp"),
	}},

	// Total Tox: parabens
	{panel: PanelTox, rows: []row{
		m("B_PARA", "Butylparaben", "butyl paraben").weighted(7, dw{DomainParabens: 7}),
		// Methyl before ethyl: "methylparaben" contains "ethylparaben".
		m("M_PARA", "Methylparaben", "methyl paraben").weighted(6, dw{DomainParabens: 6}),
		m("E_PARA", "Ethylparaben", "ethyl paraben").weighted(5, dw{DomainParabens: 5}),
		m("P_PARA", "Propylparaben", "propyl paraben").weighted(7, dw{DomainParabens: 7}),
	}},

	// Total Tox: phthalate metabolites
	{panel: PanelTox, tox: 6, domains: dw{DomainPhthalates: 7}, rows: []row{
		m("MEHHP", "Mono-(2-ethyl-5-hydroxyhexyl) Phthalate", "mono-2-ethyl-5-hydroxyhexyl phthalate",
			"mono-(2-ethyl-5-hydroxyhexyl)phthalate", "mehhp"),
		m("MEOHP", "Mono-(2-ethyl-5-oxohexyl) Phthalate", "mono-2-ethyl-5-oxohexyl phthalate",
			"mono-(2-ethyl-5-oxohexyl)phthalate", "meohp"),
		m("MEHP", "Mono-2-ethylhexyl Phthalate", "mono-(2-ethylhexyl) phthalate",
			"mono-(2-ethylhexyl)phthalate", "mehp"),
		m("METP", "Mono-ethyl Phthalate", "monoethyl phthalate", "mono-ethylphthalate", "metp", "mep").
			weighted(5, dw{DomainPhthalates: 5}),
	}},

	// Total Tox: volatile organic compound metabolites
	{panel: PanelTox, tox: 5, domains: dw{DomainVOCs: 6}, rows: []row{
		m("2HEMA", "2-Hydroxyethyl Mercapturic Acid", "2hema", "hema"),
		m("2HIB", "2-Hydroxyisobutyric Acid", "2hib"),
		m("2MHA", "2-Methylhippuric Acid", "2mha"),
		m("3MHA", "3-Methylhippuric Acid", "3mha"),
		m("4MHA", "4-Methylhippuric Acid", "4mha"),
		m("NACE", "N-Acetyl (2-Cyanoethyl) Cysteine", "n-acetyl-s-(2-cyanoethyl)-cysteine", "nace").
			weighted(6, dw{DomainVOCs: 7}),
		m("NAHP", "N-Acetyl (2,Hydroxypropyl) Cysteine", "n-acetyl-s-(2-hydroxypropyl)-cysteine", "nahp"),
		m("NADC", "N-Acetyl (3,4-Dihydroxybutyl) Cysteine", "n-acetyl-s-(3,4-dihydroxybutyl)-cysteine", "nadc"),
		m("NAPR", "N-Acetyl (Propyl) Cysteine", "n-acetyl-s-propyl-cysteine", "napr"),
		m("NAP", "N-Acetyl Phenyl Cysteine", "n-acetyl-s-phenyl-cysteine", "nap").
			weighted(7, dw{DomainVOCs: 8}),
		m("PGO", "Phenyl Glyoxylic Acid", "pgo"),
	}},

	// Total Tox: other
	{panel: PanelTox, rows: []row{
		m("DPP", "Diphenyl Phosphate", "dpp").weighted(4, dw{DomainPlastics: 4}),
		m("NASC", "N-Acetyl-S-(2-carbamoylethyl)-cysteine", "nasc").weighted(5, dw{DomainVOCs: 5}),
		m("PERC", "Perchlorate", "perc").weighted(5, nil),
		m("TG", "Tiglylglycine", "tg").weighted(3, nil),
	}},

	// Oxidative stress
	{panel: PanelOxidative, tox: 3, domains: dw{DomainOxidative: 6}, rows: []row{
		m("CML", "Carboxymethyl Lysine", "carboxymethyllysine", "n-epsilon-carboxymethyllysine", "cml"),
		m("8_ISO_PGF2A", "8-Isoprostane", "8-iso-prostaglandin f2a", "8-iso-prostaglandin f2 alpha",
			"8-iso-pgf2a", "8-epi-pgf2a"),
		m("11B_PGF2A", "11b-Prostaglandin F2a", "11-beta-prostaglandin f2 alpha", "11b-pgf2a",
			"11-beta-pgf2a"),
		m("15_KETO_PGF2A", "15-Keto-Prostaglandin F2a", "15-keto-pgf2a", "15-keto-prostaglandin f2 alpha"),
		m("8OHDG", "8-OHdG", "8-hydroxy-2-deoxyguanosine", "8-hydroxy-2'-deoxyguanosine", "8-oxo-dg", "8ohdg"),
		m("11DH_TXB2", "11-Dehydro-Thromboxane B2", "11-dehydrothromboxane b2", "11-dh-txb2"),
		m("MDA", "Malondialdehyde", "mda"),
		m("GSH", "Glutathione", "reduced glutathione").weighted(0, nil),
	}},

	// Methylation
	{panel: PanelMethyl, tox: 0, domains: dw{DomainMethylation: 4}, rows: []row{
		m("HCY", "Homocysteine", "total homocysteine", "hcy").weighted(0, dw{DomainMethylation: 6}),
		m("SAM", "S-Adenosylmethionine", "sam"),
		m("SAH", "S-Adenosylhomocysteine", "sah"),
		m("SAM_SAH", "SAM/SAH Ratio", "sam:sah ratio"),
	}},

	// Methylation genotypes
	{panel: PanelGenomics, tox: 0, domains: dw{DomainMethylation: 5}, rows: []row{
		m("MTHFR_C677T", "MTHFR C677T", "mthfr 677", "rs1801133"),
		m("MTHFR_A1298C", "MTHFR A1298C", "mthfr 1298", "rs1801131"),
		m("MTR_A2756G", "MTR A2756G", "rs1805087"),
		m("MTRR_A66G", "MTRR A66G", "rs1801394"),
		m("COMT_V158M", "COMT V158M", "comt", "rs4680"),
	}},

	// Longevity chemistry
	{panel: PanelChemistry, rows: []row{
		// Hormones
		m("TEST", "Testosterone", "total testosterone"),
		m("FREE_T", "Free Testosterone", "calc free testosterone"),
		m("SHBG", "Sex Hormone Binding Globulin", "shbg"),
		m("FSH", "Follicle Stim Hormone", "fsh"),
		m("LH", "Luteinizing Hormone", "lh"),
		m("E2", "Estradiol"),
		m("DHEAS", "DHEA Sulfate", "dhea-s"),
		m("PRL", "Prolactin"),
		m("CORTISOL", "Cortisol", "cortisol, random"),
		m("PROG", "Progesterone"),

		// Thyroid
		m("TSH", "TSH"),
		m("FT3", "Free T3"),
		m("FT4", "Free T4"),
		m("TT3", "Total T3"),
		m("TT4", "Total T4"),
		m("RT3", "Reverse T3"),
		m("TPO", "Thyroid Peroxidase Antibodies"),
		m("TG_AB", "Thyroglobulin Antibodies"),

		// Metabolic
		m("HBA1C", "Hemoglobin A1C %", "hba1c"),
		m("GLUCOSE", "Glucose", "fasting glucose"),
		m("INSULIN", "Insulin", "fasting insulin"),
		m("HOMA_IR", "HOMA-IR"),

		// Vitamins and minerals
		m("VIT_D", "Vitamin D 25", "vitamin d, 25 hydroxy", "25-hydroxy vitamin d"),
		m("VIT_B12", "Vitamin B12", "b12").weighted(0, dw{DomainMethylation: 4}),
		m("FOLATE", "Folate", "folic acid").weighted(0, dw{DomainMethylation: 4}),
		m("FERRITIN", "Ferritin"),
		m("IRON", "Iron", "serum iron"),
		m("TIBC", "TIBC"),
		m("IRON_SAT", "Iron Saturation"),
		m("MAG", "Magnesium"),
		m("ZINC", "Zinc"),
		m("COPPER", "Copper"),

		// Lipids
		m("CHOL", "Cholesterol", "total cholesterol"),
		m("TRIG", "Triglycerides"),
		m("HDL", "HDL", "hdl cholesterol"),
		m("LDL", "LDL", "calc ldl", "ldl cholesterol"),
		m("VLDL", "VLDL", "vldl (calc)"),
		m("APOB", "Apolipoprotein B", "apob"),
		m("LPA", "Lipoprotein(a)", "lp(a)"),
		m("CHOL_HDL_RATIO", "Chol/HDL"),
		m("LDL_HDL_RATIO", "Risk Ratio LDL/HDL"),

		// Inflammation
		m("HSCRP", "hsCRP", "high-sensitivity crp", "hs-crp"),
		m("CRP", "C-Reactive Protein"),
		m("FIB", "Fibrinogen"),
		m("URIC_ACID", "Uric Acid"),

		// Kidney
		m("CREAT", "Creatinine", "creatinine, serum"),
		m("BUN", "BUN", "blood urea nitrogen"),
		m("BUN_CREAT", "BUN/Creat (Calc)"),
		m("EGFR", "eGFR", "egfr non-african amer."),
		m("EGFR_AA", "eGFR African Amer"),
		m("CYSC", "Cystatin C"),

		// Liver
		m("ALT", "ALT", "sgpt"),
		m("AST", "AST", "sgot"),
		m("ALP", "Alkaline Phosphatase", "alkp"),
		m("GGT", "GGT", "gamma gt"),
		m("TBILI", "Total Bilirubin", "bilirubin"),
		m("DBILI", "Direct Bilirubin"),
		m("ALB", "Albumin"),
		m("TP", "Total Protein"),
		m("GLOB", "Globulin", "globulin (calc)"),
		m("AG_RATIO", "A/G Calc"),

		// Electrolytes
		m("NA", "Sodium"),
		m("K", "Potassium"),
		m("CL", "Chloride"),
		m("CO2", "CO2", "carbon dioxide"),
		m("CA", "Calcium"),
		m("PHOS", "Phosphorus"),
		m("ANION_GAP", "Anion Gap"),

		// Hematology
		m("WBC", "White Blood Cell Count", "wbc"),
		m("RBC", "Red Blood Cell Count", "rbc"),
		m("HGB", "Hemoglobin"),
		m("HCT", "Hematocrit"),
		m("MCV", "MCV"),
		m("MCH", "MCH"),
		m("MCHC", "MCHC"),
		m("RDW", "RDW"),
		m("RDW_CV", "RDW-CV"),
		m("RDW_SD", "RDW-SD"),
		m("PLT", "Platelet", "platelet count"),
		m("MPV", "MPV"),
		m("NEUT_PCT", "Neutrophils %"),
		m("LYMPH_PCT", "Lymphocytes%"),
		m("MONO_PCT", "Monocytes%"),
		m("EOS_PCT", "Eosinophils %"),
		m("BASO_PCT", "Basophils %"),
		m("NEUT_ABS", "NEUT#"),
		m("LYMPH_ABS", "LYMPH#"),
		m("MONO_ABS", "MONO#"),
		m("EOS_ABS", "EO#"),
		m("BASO_ABS", "BASO#"),
		m("IG_PCT", "Immature Granulocytes%"),
		m("IG_ABS", "IG#"),
		m("NRBC_PCT", "NRBC %"),
		m("NRBC_ABS", "NRBC #"),

		// Cancer screening
		m("PSA", "Total PSA", "psa", "psa, total, diagnostic"),
		m("PSA_FREE", "Free PSA"),

		// Growth
		m("IGF1", "IGF-I", "igf-1", "insulin-like growth factor"),

		// Other
		m("ESR", "Sed Rate", "esr"),
		m("PREALB", "Prealbumin"),
	}},
}
