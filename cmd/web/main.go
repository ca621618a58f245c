// @title           Photography Portfolio API
// @version         1.0
// @description     Портфолио фотографа: публичная галерея, админка с сессией в cookie, форма заявок.
// @contact.name    Portfolio owner
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /

package main

import (
	_ "portfolio_backend/docs"
	"portfolio_backend/internal/app"
)

func main() {
	app.Run()
}
