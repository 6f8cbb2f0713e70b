package lexicon

// Built-in tables. Keys and values are normalized when the default
// Lexicon is built, so entries may be written in any case.

var builtinMisspellings = map[string]string{
	// conditions
	"eczwma":         "eczema",
	"exzema":         "eczema",
	"eczma":          "eczema",
	"ecsema":         "eczema",
	"excema":         "eczema",
	"psoriasus":      "psoriasis",
	"psorisis":       "psoriasis",
	"sorasis":        "psoriasis",
	"soriasis":       "psoriasis",
	"rosaceae":       "rosacea",
	"rosacia":        "rosacea",
	"rosasea":        "rosacea",
	"ance":           "acne",
	"acnee":          "acne",
	"accne":          "acne",
	"mellasma":       "melasma",
	"melazma":        "melasma",
	"vitilago":       "vitiligo",
	"vitiglio":       "vitiligo",
	"hyperhydrosis":  "hyperhidrosis",
	"hyperhidrossis": "hyperhidrosis",
	"alopeica":       "alopecia",
	"allopecia":      "alopecia",
	"melanoma's":     "melanoma",
	"melonoma":       "melanoma",
	"mellanoma":      "melanoma",
	"keratosys":      "keratosis",
	"dermatitus":     "dermatitis",
	"dermititis":     "dermatitis",
	"urticara":       "urticaria",
	"shingels":       "shingles",
	"wart's":         "warts",
	"molle":          "mole",
	"moles":          "mole",

	// specialties and providers
	"dermatoligist":  "dermatologist",
	"dermotologist":  "dermatologist",
	"dermatologest":  "dermatologist",
	"dermitologist":  "dermatologist",
	"dermatolgist":   "dermatologist",
	"dermatoloy":     "dermatology",
	"dermotology":    "dermatology",
	"dermatalogy":    "dermatology",
	"derm":           "dermatology",
	"dermatologists": "dermatologist",
	"pediatic":       "pediatric",
	"pediactric":     "pediatric",
	"esthetician":    "aesthetician",
	"estetician":     "aesthetician",
	"asthetic":       "aesthetic",
	"esthetic":       "aesthetic",
	"medspa":         "med spa",
	"medispa":        "med spa",

	// treatments and brands
	"botax":          "botox",
	"bottox":         "botox",
	"boto":           "botox",
	"filers":         "fillers",
	"filler":         "fillers",
	"juviderm":       "juvederm",
	"juvaderm":       "juvederm",
	"restalyne":      "restylane",
	"restilane":      "restylane",
	"dysport's":      "dysport",
	"disport":        "dysport",
	"microneedeling": "microneedling",
	"microneedle":    "microneedling",
	"micro-needling": "microneedling",
	"coolsculpt":     "coolsculpting",
	"cool-sculpting": "coolsculpting",
	"kybela":         "kybella",
	"lazer":          "laser",
	"lasor":          "laser",
	"peal":           "peel",
	"peals":          "peel",
	"peels":          "peel",
	"hydrofacial":    "hydrafacial",
	"hydra-facial":   "hydrafacial",
	"tretinion":      "tretinoin",
	"accutane's":     "accutane",
	"acutane":        "accutane",
	"isotretinion":   "isotretinoin",
	"biopsey":        "biopsy",
	"biospy":         "biopsy",
	"cryotherapy's":  "cryotherapy",
	"moh":            "mohs",
	"mohz":           "mohs",
}

var builtinSynonyms = map[string][]string{
	"eczema":        {"atopic dermatitis", "dermatitis", "itchy skin", "rash"},
	"dermatitis":    {"eczema", "rash", "contact dermatitis"},
	"psoriasis":     {"plaque psoriasis", "scaly skin", "biologics"},
	"rosacea":       {"facial redness", "flushing", "broken capillaries"},
	"acne":          {"pimples", "breakouts", "blemishes", "acne scars", "accutane", "isotretinoin"},
	"melasma":       {"hyperpigmentation", "dark spots", "pigmentation"},
	"vitiligo":      {"depigmentation", "white patches"},
	"hyperhidrosis": {"excessive sweating", "sweating"},
	"alopecia":      {"hair loss", "thinning hair", "prp"},
	"melanoma":      {"skin cancer", "mole check", "skin check"},
	"keratosis":     {"actinic keratosis", "seborrheic keratosis", "precancer"},
	"urticaria":     {"hives"},
	"warts":         {"verruca", "cryotherapy"},
	"mole":          {"mole removal", "mole check", "nevus"},
	"skin cancer":   {"melanoma", "basal cell", "squamous cell", "mohs", "skin check"},
	"dermatologist": {"dermatology", "skin doctor"},
	"dermatology":   {"dermatologist", "skin care", "skin doctor"},
	"pediatric":     {"children", "kids", "pediatric dermatology"},
	"aesthetician":  {"facials", "skin care", "aesthetic"},
	"aesthetic":     {"cosmetic", "med spa", "aesthetics"},
	"cosmetic":      {"aesthetic", "cosmetic dermatology", "med spa"},
	"med spa":       {"medical spa", "aesthetic", "cosmetic"},
	"botox":         {"neurotoxin", "dysport", "xeomin", "wrinkle relaxer", "injectables"},
	"dysport":       {"botox", "neurotoxin", "injectables"},
	"fillers":       {"dermal fillers", "juvederm", "restylane", "injectables", "lip filler"},
	"juvederm":      {"fillers", "dermal fillers"},
	"restylane":     {"fillers", "dermal fillers"},
	"microneedling": {"collagen induction", "skinpen", "prp"},
	"coolsculpting": {"fat reduction", "body contouring", "cryolipolysis"},
	"kybella":       {"double chin", "fat reduction"},
	"laser":         {"laser resurfacing", "ipl", "fraxel", "laser hair removal"},
	"peel":          {"chemical peel", "exfoliation"},
	"hydrafacial":   {"facials", "hydradermabrasion"},
	"accutane":      {"isotretinoin", "acne"},
	"isotretinoin":  {"accutane", "acne"},
	"tretinoin":     {"retinoid", "retin-a"},
	"biopsy":        {"skin biopsy", "skin check"},
	"mohs":          {"mohs surgery", "skin cancer", "micrographic surgery"},
	"tattoo":        {"tattoo removal", "picosure", "laser"},
	"hair":          {"hair loss", "hair removal"},
}

var builtinPhrases = map[string][]string{
	"mohs surgery":          {"mohs", "skin cancer"},
	"mohs micrographic":     {"mohs", "skin cancer"},
	"skin cancer":           {"skin cancer", "melanoma", "mohs"},
	"skin check":            {"skin check", "melanoma", "mole"},
	"mole check":            {"mole", "melanoma"},
	"full body exam":        {"skin check", "melanoma"},
	"atopic dermatitis":     {"eczema"},
	"contact dermatitis":    {"dermatitis"},
	"hair loss":             {"alopecia"},
	"hair removal":          {"laser hair removal"},
	"dark spots":            {"hyperpigmentation", "melasma"},
	"age spots":             {"hyperpigmentation"},
	"sun damage":            {"hyperpigmentation", "keratosis"},
	"acne scars":            {"acne", "microneedling", "laser resurfacing"},
	"excessive sweating":    {"hyperhidrosis"},
	"chemical peel":         {"peel"},
	"lip filler":            {"fillers"},
	"lip injections":        {"fillers"},
	"dermal filler":         {"fillers"},
	"wrinkle relaxer":       {"botox"},
	"crows feet":            {"botox"},
	"double chin":           {"kybella", "coolsculpting"},
	"fat freezing":          {"coolsculpting"},
	"body contouring":       {"coolsculpting"},
	"tattoo removal":        {"tattoo", "laser"},
	"skin doctor":           {"dermatologist", "dermatology"},
	"skin care":             {"aesthetician", "dermatology"},
	"medical spa":           {"med spa"},
	"kids dermatologist":    {"pediatric"},
	"pediatric dermatology": {"pediatric", "dermatology"},
	"board certified":       {"dermatologist"},
}
