package schema

type IpRateWhitelist struct {
	ID          uint   `gorm:"primarykey"`
	OriginOrIP  string // e.g "188.0.2.2"
	Available   bool   `gorm:"index:idx3"` // true means effective
	Description string
}

type Param struct {
	ID            uint   `gorm:"primarykey"`
	ApiRateLimit  int    // requests per period per origin+ip
	ApiRatePeriod string // "S","M","H","D"
	MaxWebsiteLen int    // max length of the website tag on a purchase
}

func DefaultParam() Param {
	return Param{
		ApiRateLimit:  100,
		ApiRatePeriod: "M",
		MaxWebsiteLen: 256,
	}
}
