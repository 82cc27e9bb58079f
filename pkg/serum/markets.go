package serum

import (
	"context"

	log "github.com/sirupsen/logrus"

	"serumgw/pkg/connector"
	"serumgw/pkg/market"
	"serumgw/pkg/snapshot"
	"serumgw/pkg/solana"
	"serumgw/pkg/utils"
)

// RefreshMarkets re-lists the venue's markets, loads each market's on-chain
// attributes, and replaces the registry wholesale. When the listing call
// fails and a snapshot store is configured, it falls back to the cached
// listing instead of erroring out.
func (c *SerumConnector) RefreshMarkets(ctx context.Context) error {
	listings, err := c.provider.ListMarkets(ctx)
	if err != nil {
		if c.snapshots == nil {
			return err
		}
		log.Warnf("🚩 market listing failed, loading snapshot: %v", err)
		return c.refreshFromSnapshot()
	}

	markets := make(map[string]*market.Market, len(listings))
	for _, basic := range listings {
		desc, err := basic.Canonical()
		if err != nil {
			return err
		}
		attrs, err := c.provider.LoadMarket(ctx, desc.Address)
		if err != nil {
			return err
		}
		m, err := market.Normalize(basic, attrs)
		if err != nil {
			return err
		}
		markets[m.Name] = m
	}

	c.registry.Replace(markets)
	log.Infof("🦾 serum registry refreshed, %v markets", len(markets))

	if c.snapshots != nil {
		if err := c.saveSnapshot(markets); err != nil {
			log.Warnf("🚩 failed to save market snapshot: %v", err)
		}
	}
	return nil
}

func (c *SerumConnector) refreshFromSnapshot() error {
	body, err := c.snapshots.Load(c.snapshotKey)
	if err != nil {
		return err
	}
	records, err := snapshot.Decode(body)
	if err != nil {
		return err
	}

	markets := make(map[string]*market.Market, len(records))
	for _, rec := range records {
		attrs := market.Attributes{
			MinimumOrderSize: rec.MinimumOrderSize,
			TickSize:         rec.TickSize,
			Fees:             market.Fee{Maker: rec.MakerFee, Taker: rec.TakerFee},
		}
		if rec.MinimumBaseIncrement != "" {
			inc, err := utils.StrToDecimal(rec.MinimumBaseIncrement)
			if err != nil {
				return err
			}
			attrs.MinimumBaseIncrement = inc
		}
		basic := market.PlainBasicMarket{
			Name:       rec.Name,
			Address:    rec.Address,
			ProgramID:  rec.ProgramID,
			Deprecated: rec.Deprecated,
		}
		m, err := market.Normalize(basic, attrs)
		if err != nil {
			return err
		}
		markets[m.Name] = m
	}

	c.registry.Replace(markets)
	log.Infof("🦾 serum registry restored from snapshot, %v markets", len(markets))
	return nil
}

func (c *SerumConnector) saveSnapshot(markets map[string]*market.Market) error {
	records := make([]snapshot.Record, 0, len(markets))
	for _, m := range markets {
		rec := snapshot.Record{
			Name:             m.Name,
			Address:          m.Address.String(),
			ProgramID:        m.ProgramID.String(),
			Deprecated:       m.Deprecated,
			MinimumOrderSize: m.MinimumOrderSize,
			TickSize:         m.TickSize,
			MakerFee:         m.Fees.Maker,
			TakerFee:         m.Fees.Taker,
		}
		if !m.MinimumBaseIncrement.IsZero() {
			rec.MinimumBaseIncrement = m.MinimumBaseIncrement.String()
		}
		records = append(records, rec)
	}
	body, err := snapshot.Encode(records)
	if err != nil {
		return err
	}
	return c.snapshots.Save(c.snapshotKey, body)
}

func (c *SerumConnector) GetMarkets(ctx context.Context, req connector.GetMarketsRequest) (*connector.GetMarketsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	card := req.Cardinality()
	res := &connector.GetMarketsResponse{Kind: connector.KindFor(card, false)}

	switch card {
	case connector.CardinalityOne:
		m, err := c.resolveMarket(req.Name)
		if err != nil {
			return nil, err
		}
		res.Market = m
	case connector.CardinalityMany:
		res.Markets = make(map[string]*market.Market, len(req.Names))
		for _, name := range req.Names {
			m, err := c.resolveMarket(name)
			if err != nil {
				return nil, err
			}
			res.Markets[name] = m
		}
	default:
		res.Markets = c.registry.All()
	}
	return res, nil
}

// resolveMarketSelector expands a name selector into concrete markets,
// preserving request order for the plural flavor.
func (c *SerumConnector) resolveMarketSelector(name string, names []string) ([]*market.Market, error) {
	if name != "" {
		m, err := c.resolveMarket(name)
		if err != nil {
			return nil, err
		}
		return []*market.Market{m}, nil
	}
	if len(names) > 0 {
		markets := make([]*market.Market, 0, len(names))
		for _, n := range names {
			m, err := c.resolveMarket(n)
			if err != nil {
				return nil, err
			}
			markets = append(markets, m)
		}
		return markets, nil
	}
	all := c.registry.All()
	markets := make([]*market.Market, 0, len(all))
	for _, m := range all {
		markets = append(markets, m)
	}
	return markets, nil
}

// selectorAddress maps an optional market-name narrow to the provider's
// address argument; the zero address means all markets.
func (c *SerumConnector) selectorAddress(marketName string) (solana.PublicKey, error) {
	if marketName == "" {
		return solana.PublicKey{}, nil
	}
	m, err := c.resolveMarket(marketName)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return m.Address, nil
}
