package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"zaika-pay-api/internal/billdesk"
	"zaika-pay-api/internal/config"
	"zaika-pay-api/internal/dal"
	"zaika-pay-api/internal/handler"
	"zaika-pay-api/internal/idgen"
	"zaika-pay-api/internal/middleware"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(config.C.Server.NodeID)

	// billdesk gateway client
	gw, err := billdesk.NewClient(billdesk.Config{
		MerchantID:      config.C.Billdesk.MerchantID,
		ClientID:        config.C.Billdesk.ClientID,
		EncryptionKey:   config.C.Billdesk.EncryptionKey,
		EncryptionKeyID: config.C.Billdesk.EncryptionKeyID,
		SigningKey:      config.C.Billdesk.SigningKey,
		SigningKeyID:    config.C.Billdesk.SigningKeyID,
		BaseURL:         config.C.Billdesk.BaseURL,
		RedirectURL:     config.C.Billdesk.RedirectURL,
		Timeout:         config.C.Billdesk.Timeout(),
	})
	if err != nil {
		log.Fatalf("[Main] billdesk client init failed: %v", err)
	}

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// 设置可信代理 IP（如本地或内网）
	r.SetTrustedProxies([]string{"127.0.0.1", "192.168.0.0/16"})
	r.Use(middleware.Recover(), middleware.RequestLogger())

	payment := r.Group("/api/payment")
	{
		ph := handler.NewPaymentHandler(gw)
		fh := handler.NewForwardHandler()

		// 跳转中转页不要求登录态，参数来自下单响应
		payment.GET("/forward", fh.Forward)

		authed := payment.Group("", middleware.UserAuth())
		authed.POST("/create-order", ph.CreateOrder)
		authed.POST("/retry", ph.Retry)
		authed.GET("/order/:id", ph.OrderStatus)
		authed.GET("/history", ph.History)
	}

	admin := r.Group("/api/admin", middleware.AdminAuth())
	{
		ah := handler.NewAdminHandler()
		admin.GET("/transactions", ah.ListTransactions)
		admin.GET("/transactions/summary", ah.TransactionSummary)
		admin.GET("/transactions/:id", ah.GetTransaction)
		admin.GET("/gateway/health", ah.GatewayHealth)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
