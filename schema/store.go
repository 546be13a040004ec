package schema

var (
	// bucket
	ParamsBucket  = "params-bucket"  // key: PricesKey | SettingsKey, val: json
	SuffixBucket  = "suffix-bucket"  // key: suffix, val: SuffixRecord
	BalanceBucket = "balance-bucket" // key: owner+"/"+symbolCode, val: Balance

	PricesKey   = "prices"
	SettingsKey = "settings"
)

func AllBuckets() []string {
	return []string{ParamsBucket, SuffixBucket, BalanceBucket}
}

func BalanceKey(owner Name, symbolCode string) string {
	return string(owner) + "/" + symbolCode
}
