package router

import (
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	valuationhandler "portfolio_backend/internal/feature/valuation/transport/handler"
	platformhandler "portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(auth *authhandler.AuthHandler, portfolio *portfoliohandler.PortfolioHandler,
	valuation *valuationhandler.ValuationHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// オペレーターログイン（JWT 発行）
	r.POST("/login", auth.Login)
	// ポートフォリオの参照系
	r.GET("/portfolio", portfolio.List)
	r.GET("/portfolio/valuation", valuation.Valuation)
	r.GET("/portfolio/signals", valuation.Notifications)
	r.GET("/signals/:ticker", valuation.Signal)

	// 認証必須のルート（ポートフォリオの変更操作）
	// r.Group("/") でルートグループを作成
	protected := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	protected.Use(jwtmw.AuthRequired())
	{
		protected.POST("/portfolio/positions", portfolio.Add)
		protected.DELETE("/portfolio/positions/:ticker", portfolio.Remove)
	}

	return r
}
