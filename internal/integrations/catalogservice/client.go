package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	endpoint := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, endpoint, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetPackage получает пакет услуги по ID
func (c *Client) GetPackage(ctx context.Context, packageID int64) (*Package, error) {
	endpoint := fmt.Sprintf("%s/internal/packages/%d", c.baseURL, packageID)

	var pkg Package
	if err := c.getJSON(ctx, endpoint, &pkg, ErrPackageNotFound); err != nil {
		return nil, err
	}

	return &pkg, nil
}

// GetServiceWithGracefulDegradation получает услугу с graceful degradation
// При недоступности CatalogService возвращает ErrServiceDegraded
func (c *Client) GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*Service, error) {
	service, err := c.GetService(ctx, serviceID)
	if err != nil {
		if err == ErrServiceNotFound {
			c.log.Info("Service id=%d not found in catalog", serviceID)
			return nil, err
		}

		c.log.Error("CatalogService unavailable, applying graceful degradation for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: service_id=%d, error=%v", ErrServiceDegraded, serviceID, err)
	}

	return service, nil
}

// GetPackageWithGracefulDegradation получает пакет с graceful degradation
func (c *Client) GetPackageWithGracefulDegradation(ctx context.Context, packageID int64) (*Package, error) {
	pkg, err := c.GetPackage(ctx, packageID)
	if err != nil {
		if err == ErrPackageNotFound {
			c.log.Info("Package id=%d not found in catalog", packageID)
			return nil, err
		}

		c.log.Error("CatalogService unavailable, applying graceful degradation for package id=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: package_id=%d, error=%v", ErrServiceDegraded, packageID, err)
	}

	return pkg, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
// notFoundErr возвращается на 404
func (c *Client) getJSON(ctx context.Context, endpoint string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
