package names

import "github.com/everFinance/names/common"

var log = common.NewLog("names")
