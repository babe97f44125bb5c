package binanceclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradejournal/internal/domain"
	"tradejournal/internal/marketdata/indicators"
	"tradejournal/internal/ports"

	"github.com/adshao/go-binance/v2"
)

const (
	rsiPeriod        = 14
	shortSMAPeriod   = 20
	longSMAPeriod    = 50
	volatilityPeriod = 20
	klineInterval    = "1d"
)

// Client implements ports.SnapshotProvider using the go-binance spot API.
// It captures a market context for a ticker from daily candles: RSI, the 20-
// and 50-day simple moving averages, annualized volatility, and a sentiment
// label derived from price position and momentum.
type Client struct {
	api        *binance.Client
	logger     ports.Logger
	quoteAsset string
	klineLimit int

	rsi        *indicators.RSI
	smaShort   *indicators.SMA
	smaLong    *indicators.SMA
	volatility *indicators.Volatility
}

// Config holds configuration specific to the Binance snapshot adapter.
type Config struct {
	APIKey     string
	SecretKey  string
	Logger     ports.Logger
	QuoteAsset string // Appended to the ticker to form a market symbol, e.g. "USDT"
	KlineLimit int    // Number of daily candles to request
}

// New creates a new Binance snapshot provider.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance snapshot provider")
	}
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		cfg.Logger.Warn(context.Background(), "APIKey or SecretKey is empty; only public endpoints will work")
	}

	quoteAsset := strings.ToUpper(cfg.QuoteAsset)
	if quoteAsset == "" {
		quoteAsset = "USDT"
	}
	klineLimit := cfg.KlineLimit
	if klineLimit <= longSMAPeriod {
		klineLimit = longSMAPeriod + 10 // Enough history for the slowest indicator
	}

	return &Client{
		api:        binance.NewClient(cfg.APIKey, cfg.SecretKey),
		logger:     cfg.Logger,
		quoteAsset: quoteAsset,
		klineLimit: klineLimit,
		rsi:        indicators.NewRSI(rsiPeriod),
		smaShort:   indicators.NewSMA(shortSMAPeriod),
		smaLong:    indicators.NewSMA(longSMAPeriod),
		volatility: indicators.NewVolatility(volatilityPeriod),
	}, nil
}

// Snapshot captures the market context for a ticker at the moment of the call.
func (c *Client) Snapshot(ctx context.Context, ticker string) (domain.MarketContext, error) {
	symbol := ticker + c.quoteAsset

	klines, err := c.getKlines(ctx, symbol)
	if err != nil {
		return domain.MarketContext{}, err
	}
	if len(klines) <= longSMAPeriod {
		return domain.MarketContext{}, fmt.Errorf("only %d candles available for %s: %w", len(klines), symbol, ports.ErrSnapshotUnavailable)
	}

	snapshot := domain.MarketContext{}
	if snapshot.RSI, err = c.rsi.Calculate(ctx, klines); err != nil {
		return domain.MarketContext{}, fmt.Errorf("rsi for %s: %v: %w", symbol, err, ports.ErrSnapshotUnavailable)
	}
	if snapshot.SMA20, err = c.smaShort.Calculate(ctx, klines); err != nil {
		return domain.MarketContext{}, fmt.Errorf("sma20 for %s: %v: %w", symbol, err, ports.ErrSnapshotUnavailable)
	}
	if snapshot.SMA50, err = c.smaLong.Calculate(ctx, klines); err != nil {
		return domain.MarketContext{}, fmt.Errorf("sma50 for %s: %v: %w", symbol, err, ports.ErrSnapshotUnavailable)
	}
	if snapshot.Volatility, err = c.volatility.Calculate(ctx, klines); err != nil {
		return domain.MarketContext{}, fmt.Errorf("volatility for %s: %v: %w", symbol, err, ports.ErrSnapshotUnavailable)
	}

	snapshot.CurrentPrice, err = c.getLastPrice(ctx, symbol)
	if err != nil {
		// The closing price of the latest candle is an acceptable stand-in.
		c.logger.Warn(ctx, "Falling back to last close for current price", map[string]interface{}{"symbol": symbol, "error": err.Error()})
		snapshot.CurrentPrice = klines[len(klines)-1].Close
	}

	snapshot.Sentiment = classifySentiment(snapshot)
	c.logger.Debug(ctx, "Market snapshot captured", map[string]interface{}{
		"symbol": symbol, "price": snapshot.CurrentPrice, "rsi": snapshot.RSI, "sentiment": snapshot.Sentiment,
	})
	return snapshot, nil
}

func (c *Client) getKlines(ctx context.Context, symbol string) ([]domain.Kline, error) {
	raw, err := c.api.NewKlinesService().
		Symbol(symbol).
		Interval(klineInterval).
		Limit(c.klineLimit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines for %s: %v: %w", symbol, err, ports.ErrSnapshotUnavailable)
	}

	klines := make([]domain.Kline, 0, len(raw))
	for _, k := range raw {
		dk, err := translateKline(k)
		if err != nil {
			return nil, fmt.Errorf("failed to translate kline for %s: %v: %w", symbol, err, ports.ErrSnapshotUnavailable)
		}
		klines = append(klines, dk)
	}
	return klines, nil
}

func (c *Client) getLastPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := c.api.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch price for %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("no price returned for %s", symbol)
	}
	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q for %s: %w", prices[0].Price, symbol, err)
	}
	return price, nil
}

func translateKline(k *binance.Kline) (domain.Kline, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return domain.Kline{}, fmt.Errorf("malformed open %q: %w", k.Open, err)
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return domain.Kline{}, fmt.Errorf("malformed high %q: %w", k.High, err)
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return domain.Kline{}, fmt.Errorf("malformed low %q: %w", k.Low, err)
	}
	closePrice, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return domain.Kline{}, fmt.Errorf("malformed close %q: %w", k.Close, err)
	}
	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return domain.Kline{}, fmt.Errorf("malformed volume %q: %w", k.Volume, err)
	}
	return domain.Kline{
		OpenTime:  time.UnixMilli(k.OpenTime),
		CloseTime: time.UnixMilli(k.CloseTime),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, nil
}

// classifySentiment derives the categorical mood from the captured numbers.
// The rules are deliberately simple: RSI extremes dominate, otherwise price
// position against the moving averages decides.
func classifySentiment(c domain.MarketContext) domain.Sentiment {
	switch {
	case c.RSI >= 70 && c.CurrentPrice > c.SMA20:
		return domain.SentimentVeryPositive
	case c.RSI <= 30 && c.CurrentPrice < c.SMA20:
		return domain.SentimentVeryNegative
	case c.CurrentPrice > c.SMA20 && c.SMA20 > c.SMA50:
		return domain.SentimentPositive
	case c.CurrentPrice < c.SMA20 && c.SMA20 < c.SMA50:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
