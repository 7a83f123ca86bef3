package normalize

// The curated lookup tables are ordered slices, not maps: exact fragment
// matching and category inference are both first-match-wins, so iteration
// order is part of the contract.

// DefaultMerchantMappings returns the curated fragment table. More specific
// fragments sort before their prefixes ("uber eats" before "uber") so they
// get first crack at a match. Many fragments map to one canonical name.
func DefaultMerchantMappings() []MerchantMapping {
	return []MerchantMapping{
		{"uber eats", "Uber Eats"},
		{"uber", "Uber"},
		{"lyft", "Lyft"},
		{"amazon web services", "Amazon Web Services"},
		{"amzn", "Amazon"},
		{"amazon", "Amazon"},
		{"amz", "Amazon"},
		{"wal-mart", "Walmart"},
		{"walmart", "Walmart"},
		{"target", "Target"},
		{"costco", "Costco"},
		{"whole foods", "Whole Foods"},
		{"trader joe", "Trader Joe's"},
		{"starbucks", "Starbucks"},
		{"chipotle", "Chipotle"},
		{"mcdonald", "McDonald's"},
		{"cvs", "CVS Pharmacy"},
		{"walgreens", "Walgreens"},
		{"netflix", "Netflix"},
		{"spotify", "Spotify"},
		{"hulu", "Hulu"},
		{"apple", "Apple"},
		{"google", "Google"},
		{"microsoft", "Microsoft"},
		{"shell", "Shell"},
		{"chevron", "Chevron"},
		{"exxon", "Exxon"},
		{"delta", "Delta Airlines"},
		{"united airlines", "United Airlines"},
		{"hilton", "Hilton Hotels"},
		{"marriott", "Marriott"},
		{"enterprise rent", "Enterprise Rent-A-Car"},
		{"h&m", "H&M"},
	}
}

// CategoryRule associates a category with the lowercase keywords that imply
// it. Rules are evaluated in order; within a rule, keywords are substring
// matches against the merchant name.
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultCategoryRules returns the ordered inference table. Order is the
// tie-break when a name could match several categories: food and transport
// land before the broad shopping bucket, and technology precedes shopping
// so "aws" wins over "amazon".
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{"Food", []string{
			"starbucks", "chipotle", "mcdonald", "whole foods", "trader joe",
			"restaurant", "cafe", "café", "coffee", "pizza", "taco", "grill",
			"deli", "bakery", "diner", "eats",
		}},
		{"Transportation", []string{
			"uber", "lyft", "shell", "chevron", "exxon", "gas", "fuel",
			"delta", "airlines", "airline", "amtrak", "transit", "parking",
			"enterprise rent", "rent-a-car",
		}},
		{"Entertainment", []string{
			"netflix", "spotify", "hulu", "disney", "cinema", "theater",
			"steam", "playstation",
		}},
		{"Health", []string{
			"cvs", "walgreens", "pharmacy", "gym", "fitness", "dental",
			"clinic", "medical",
		}},
		{"Technology", []string{
			"apple", "microsoft", "google", "adobe", "aws", "github",
			"digitalocean",
		}},
		{"Travel", []string{
			"hilton", "marriott", "airbnb", "hotel", "hostel", "expedia",
		}},
		{"Shopping", []string{
			"amazon", "walmart", "target", "costco", "ebay", "etsy",
			"store", "market", "shop", "h&m",
		}},
		{"Housing", []string{
			"rent payment", "rent", "mortgage", "landlord", "lease",
		}},
		{"Income", []string{
			"salary", "payroll", "deposit", "paycheck",
		}},
		{"Utilities", []string{
			"electric", "water bill", "internet", "comcast", "verizon",
			"at&t",
		}},
	}
}
