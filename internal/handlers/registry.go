package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AdminHandler     *AdminHandler
	PortfolioHandler *PortfolioHandler
	ContactHandler   *ContactHandler
	FileHandler      *FileHandler
	HealthHandler    *HealthHandler
}
