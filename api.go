package names

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/everFinance/names/common"
	"github.com/everFinance/names/schema"
	"github.com/gin-gonic/gin"
)

func (s *Names) runAPI(port string) {
	r := s.engine
	r.Use(common.CORSMiddleware())
	if s.config != nil {
		param := s.config.GetParam()
		r.Use(common.LimiterMiddleware(param.ApiRateLimit, param.ApiRatePeriod, s.config.IsWhitelisted))
	}
	s.registerRoutes()

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (s *Names) registerRoutes() {
	v1 := s.engine.Group("/")
	{
		// actions, the verified principal arrives in schema.HeaderActor
		v1.POST("/buyaccount", s.buyAccount)
		v1.POST("/suffix", s.registerSuffix)
		v1.POST("/suffix/:suffix/discount", s.setDiscount)
		v1.DELETE("/suffix/:suffix", s.deregisterSuffix)
		v1.POST("/withdraw", s.withdraw)
		v1.POST("/notify/transfer", s.notifyTransfer)
		v1.POST("/prices", s.setPrices)
		v1.POST("/settings", s.setSettings)

		// reads
		v1.GET("/price/:name", s.getPrice)
		v1.GET("/balance/:owner/:symbol", s.getBalance)
		v1.GET("/suffix/:suffix", s.getSuffix)
		v1.GET("/suffixes", s.getSuffixes)
		v1.GET("/prices", s.getPrices)
		v1.GET("/settings", s.getSettings)
		v1.GET("/purchases/:creator", s.getPurchases)
		v1.GET("/escrow/:owner", s.getEscrowEntries)
	}
}

func actor(c *gin.Context) schema.Name {
	return schema.Name(c.GetHeader(schema.HeaderActor))
}

func (s *Names) buyAccount(c *gin.Context) {
	req := schema.BuyAccountReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	rec, err := s.BuyAccount(c.Request.Context(), actor(c), req)
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Names) registerSuffix(c *gin.Context) {
	req := schema.RegisterSuffixReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	rec, err := s.RegisterSuffix(actor(c), req)
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Names) setDiscount(c *gin.Context) {
	req := schema.DiscountReq{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, err.Error())
			return
		}
	}
	rec, err := s.SetDiscount(actor(c), schema.Name(c.Param("suffix")), req.Multiplier)
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Names) deregisterSuffix(c *gin.Context) {
	rec, err := s.DeregisterSuffix(actor(c), schema.Name(c.Param("suffix")))
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Names) withdraw(c *gin.Context) {
	req := schema.WithdrawReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.Withdraw(c.Request.Context(), actor(c), req); err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespOk{Status: "ok"})
}

// notifyTransfer is called by the ledger watcher, which signs as the operator.
func (s *Names) notifyTransfer(c *gin.Context) {
	if err := requireAuth(actor(c), s.self); err != nil {
		actionErrorResponse(c, err)
		return
	}
	req := schema.TransferNotify{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if err := s.OnDeposit(req.From, req.To, req.Quantity, req.Memo); err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, schema.RespOk{Status: "ok"})
}

func (s *Names) setPrices(c *gin.Context) {
	req := schema.SetPricesReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	params, err := s.SetPrices(actor(c), req)
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

func (s *Names) setSettings(c *gin.Context) {
	var settings *schema.Settings
	if c.Request.ContentLength != 0 {
		settings = &schema.Settings{}
		if err := c.ShouldBindJSON(settings); err != nil {
			errorResponse(c, err.Error())
			return
		}
	}
	res, err := s.SetSettings(actor(c), settings)
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Names) getPrice(c *gin.Context) {
	res, err := s.GetPrice(schema.Name(c.Param("name")))
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Names) getBalance(c *gin.Context) {
	bal, err := s.GetBalance(schema.Name(c.Param("owner")), c.Param("symbol"))
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, bal)
}

func (s *Names) getSuffix(c *gin.Context) {
	rec, err := s.GetSuffix(schema.Name(c.Param("suffix")))
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Names) getSuffixes(c *gin.Context) {
	recs, err := s.GetSuffixes()
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Names) getPrices(c *gin.Context) {
	params, err := s.GetPrices()
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, params)
}

func (s *Names) getSettings(c *gin.Context) {
	settings, err := s.GetSettings()
	if err != nil {
		actionErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Names) getPurchases(c *gin.Context) {
	if s.wdb == nil {
		internalErrorResponse(c, "bookkeeping db disabled")
		return
	}
	cursor, num, err := pageParams(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	res, err := s.wdb.GetPurchasesByCreator(c.Param("creator"), cursor, num)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Names) getEscrowEntries(c *gin.Context) {
	if s.wdb == nil {
		internalErrorResponse(c, "bookkeeping db disabled")
		return
	}
	cursor, num, err := pageParams(c)
	if err != nil {
		errorResponse(c, err.Error())
		return
	}
	res, err := s.wdb.GetEscrowEntries(c.Param("owner"), cursor, num)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

func pageParams(c *gin.Context) (cursor uint, num int, err error) {
	num = schema.DefaultPageSize
	if v := c.Query("cursor"); v != "" {
		cur, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, 0, errors.New("invalid cursor")
		}
		cursor = uint(cur)
	}
	if v := c.Query("num"); v != "" {
		num, err = strconv.Atoi(v)
		if err != nil || num <= 0 || num > schema.MaxPageSize {
			return 0, 0, errors.New("invalid num")
		}
	}
	return cursor, num, nil
}

func actionErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schema.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, schema.ErrNotFound), errors.Is(err, schema.ErrSuffixNotFound):
		status = http.StatusNotFound
	case errors.Is(err, schema.ErrAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, schema.ErrInvalidArgument), errors.Is(err, schema.ErrInsufficientBalance),
		errors.Is(err, schema.ErrUnpricedLength), errors.Is(err, schema.ErrOverflow):
		status = http.StatusBadRequest
	case errors.Is(err, schema.ErrMaintenanceMode):
		status = http.StatusServiceUnavailable
	case errors.Is(err, schema.ErrLedgerCall):
		status = http.StatusBadGateway
	}
	c.JSON(status, schema.RespErr{Err: err.Error()})
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
