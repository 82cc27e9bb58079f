package core

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/invopop/jsonschema"

	"serumgw/pkg/connector"
	"serumgw/pkg/utils"
)

func SetupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "serumgw",
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	})

	app.Get("/schemas/:shape", handleGetSchema)

	conn := app.Group("/connectors/:id")
	conn.Post("/markets", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.GetMarketsRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed markets request: %v", err)
		}
		return cn.GetMarkets(c.Context(), req)
	}))
	conn.Post("/orderbooks", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.GetOrderBooksRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed order books request: %v", err)
		}
		return cn.GetOrderBooks(c.Context(), req)
	}))
	conn.Post("/tickers", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.GetTickersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed tickers request: %v", err)
		}
		return cn.GetTickers(c.Context(), req)
	}))
	conn.Post("/orders/query", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.GetOrdersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed orders request: %v", err)
		}
		return cn.GetOrders(c.Context(), req)
	}))
	conn.Post("/orders/open", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.GetOpenOrdersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed open orders request: %v", err)
		}
		return cn.GetOpenOrders(c.Context(), req)
	}))
	conn.Post("/orders/filled", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.GetFilledOrdersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed filled orders request: %v", err)
		}
		return cn.GetFilledOrders(c.Context(), req)
	}))
	conn.Post("/orders", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.CreateOrdersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed create orders request: %v", err)
		}
		return cn.CreateOrders(c.Context(), req)
	}))
	conn.Delete("/orders", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.CancelOrdersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed cancel orders request: %v", err)
		}
		return cn.CancelOrders(c.Context(), req)
	}))
	conn.Delete("/orders/open", handle(func(cn connector.Connector, c *fiber.Ctx) (interface{}, error) {
		var req connector.CancelOpenOrdersRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, connector.ValidationError("malformed cancel open orders request: %v", err)
		}
		return cn.CancelOpenOrders(c.Context(), req)
	}))

	return app
}

func ShutdownFiberApp(app *fiber.App) {
	_ = app.Shutdown()
}

func handle(op func(connector.Connector, *fiber.Ctx) (interface{}, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cn, exists := Connectors[c.Params("id")]
		if !exists {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false, "error": "connector not found",
			})
		}
		data, err := op(cn, c)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"success": true, "data": data})
	}
}

// errorResponse maps the typed error taxonomy onto HTTP statuses; the typed
// kind always survives into the payload.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, connector.ErrMarketNotFound),
		errors.Is(err, connector.ErrTickerNotFound),
		errors.Is(err, connector.ErrOrderNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, connector.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, connector.ErrTimeout):
		status = fiber.StatusGatewayTimeout
	}

	payload := fiber.Map{"success": false, "error": err.Error()}
	var typed *connector.Error
	if errors.As(err, &typed) {
		payload["kind"] = typed.Kind
	}
	return c.Status(status).JSON(payload)
}

// handleGetSchema serves the JSON schema of each request shape, so clients
// can see which selector flavors a family accepts.
func handleGetSchema(c *fiber.Ctx) error {
	generators := map[string]func() *jsonschema.Schema{
		"markets":          utils.GenerateSchema[connector.GetMarketsRequest],
		"orderbooks":       utils.GenerateSchema[connector.GetOrderBooksRequest],
		"tickers":          utils.GenerateSchema[connector.GetTickersRequest],
		"orders":           utils.GenerateSchema[connector.GetOrdersRequest],
		"createOrders":     utils.GenerateSchema[connector.CreateOrdersRequest],
		"cancelOrders":     utils.GenerateSchema[connector.CancelOrdersRequest],
		"cancelOpenOrders": utils.GenerateSchema[connector.CancelOpenOrdersRequest],
	}
	generate, exists := generators[c.Params("shape")]
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "error": "unknown schema shape",
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": generate()})
}
