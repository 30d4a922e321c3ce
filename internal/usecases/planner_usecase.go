package usecases

import (
	"fmt"
	"sort"

	domainerrors "stable-route.backend/internal/domain/errors"
)

// PlannerUsecase recommends a protocol and step sequence for a token pair
// using issuer-native deployments only. Bridged asset variants are never
// part of a plan; a token that is not issuer-native on the destination is
// simply not deliverable there.
type PlannerUsecase struct{}

// NewPlannerUsecase creates a new planner usecase
func NewPlannerUsecase() *PlannerUsecase {
	return &PlannerUsecase{}
}

// PlannedStep is one hop of a recommended route.
type PlannedStep struct {
	Action    string `json:"action"` // swap or bridge
	Chain     string `json:"chain"`
	FromToken string `json:"fromToken,omitempty"`
	ToToken   string `json:"toToken,omitempty"`
	Protocol  string `json:"protocol,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// PlannedRoute is a full recommendation for moving value between two chains.
type PlannedRoute struct {
	SourceChain      string        `json:"sourceChain"`
	SourceToken      string        `json:"sourceToken"`
	DestChain        string        `json:"destChain"`
	DestToken        string        `json:"destToken"`
	Protocol         string        `json:"protocol"`
	Steps            []PlannedStep `json:"steps"`
	EstimatedCost    string        `json:"estimatedCost"`
	EstimatedSeconds int           `json:"estimatedSeconds"`
	Warnings         []string      `json:"warnings"`
}

// plannerChain captures the issuer-native deployment surface of one chain.
type plannerChain struct {
	chainID      uint64
	lzEndpointID uint32
	cctpDomain   uint32
	native       map[string]bool
}

const (
	tokenUSDC  = "USDC"
	tokenPYUSD = "PYUSD"
	tokenUSDT  = "USDT"
	tokenDAI   = "DAI"
)

// Issuer-native deployments per chain. USDT on Base exists only as a
// bridged asset and DAI is not issued there, so neither is deliverable.
var plannerChains = map[string]plannerChain{
	"arbitrum": {
		chainID: 42161, lzEndpointID: 30110, cctpDomain: 3,
		native: map[string]bool{tokenUSDC: true, tokenPYUSD: true, tokenUSDT: true, tokenDAI: true},
	},
	"avalanche": {
		chainID: 43114, lzEndpointID: 30106, cctpDomain: 1,
		native: map[string]bool{tokenUSDC: true, tokenUSDT: true, tokenDAI: true},
	},
	"polygon": {
		chainID: 137, lzEndpointID: 30109, cctpDomain: 7,
		native: map[string]bool{tokenUSDC: true, tokenUSDT: true, tokenDAI: true},
	},
	"base": {
		chainID: 8453, lzEndpointID: 30184, cctpDomain: 6,
		native: map[string]bool{tokenUSDC: true},
	},
	"optimism": {
		chainID: 10, lzEndpointID: 30111, cctpDomain: 2,
		native: map[string]bool{tokenUSDC: true, tokenUSDT: true, tokenDAI: true},
	},
}

var plannerTokens = []string{tokenUSDC, tokenPYUSD, tokenUSDT, tokenDAI}

// ChainDeployment describes one chain the planner knows about.
type ChainDeployment struct {
	Name         string `json:"name"`
	ChainID      uint64 `json:"chainId"`
	LzEndpointID uint32 `json:"lzEndpointId"`
	CCTPDomain   uint32 `json:"cctpDomain"`
}

// Deployment resolves the chain identifiers for a planner chain name.
func (u *PlannerUsecase) Deployment(chain string) (*ChainDeployment, error) {
	cfg, ok := plannerChains[chain]
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown chain %q", chain))
	}
	return &ChainDeployment{
		Name:         chain,
		ChainID:      cfg.chainID,
		LzEndpointID: cfg.lzEndpointID,
		CCTPDomain:   cfg.cctpDomain,
	}, nil
}

// IsTokenNative reports whether the token is issuer-native on the chain.
func (u *PlannerUsecase) IsTokenNative(chain, token string) bool {
	cfg, ok := plannerChains[chain]
	return ok && cfg.native[token]
}

// ValidDestinationTokens lists the tokens deliverable on a chain, sorted.
func (u *PlannerUsecase) ValidDestinationTokens(chain string) ([]string, error) {
	cfg, ok := plannerChains[chain]
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown chain %q", chain))
	}
	var tokens []string
	for token, native := range cfg.native {
		if native {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)
	return tokens, nil
}

// IsRouteValid reports whether a plan exists for the combination. Same-chain
// pairs are never planned; those settle locally through a swap pool.
func (u *PlannerUsecase) IsRouteValid(sourceChain, sourceToken, destChain, destToken string) bool {
	if sourceChain == destChain {
		return false
	}
	if !u.IsTokenNative(sourceChain, sourceToken) {
		return false
	}
	_, err := u.PlanRoute(sourceChain, sourceToken, destChain, destToken)
	return err == nil
}

// PlanRoute builds the deterministic recommendation for one combination.
// USDC legs always ride CCTP; native-to-native DAI rides LayerZero and
// native-to-native USDT rides Stargate; everything else converts through
// USDC with a destination-side swap.
func (u *PlannerUsecase) PlanRoute(sourceChain, sourceToken, destChain, destToken string) (*PlannedRoute, error) {
	srcCfg, ok := plannerChains[sourceChain]
	if !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown chain %q", sourceChain))
	}
	if _, ok := plannerChains[destChain]; !ok {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown chain %q", destChain))
	}
	if sourceChain == destChain {
		return nil, domainerrors.BadRequest("same-chain pairs settle locally, nothing to plan")
	}
	if !validPlannerToken(sourceToken) || !validPlannerToken(destToken) {
		return nil, domainerrors.BadRequest("unknown token symbol")
	}

	route := &PlannedRoute{
		SourceChain: sourceChain,
		SourceToken: sourceToken,
		DestChain:   destChain,
		DestToken:   destToken,
		Warnings:    []string{},
	}

	switch destToken {
	case tokenUSDC:
		if sourceToken != tokenUSDC {
			route.Steps = append(route.Steps, swapStep(sourceChain, sourceToken, tokenUSDC,
				fmt.Sprintf("convert %s to USDC for the burn-and-mint leg", sourceToken)))
		}
		route.Steps = append(route.Steps, bridgeStep(sourceChain, tokenUSDC, "CCTP",
			"native USDC burn-and-mint"))
		route.Protocol = "CCTP"
		if sourceToken == tokenUSDC {
			route.EstimatedCost, route.EstimatedSeconds = "$0.10-0.30", 10
		} else {
			route.EstimatedCost, route.EstimatedSeconds = "$0.30-0.50", 20
		}
		return route, nil

	case tokenPYUSD:
		if !u.IsTokenNative(destChain, tokenPYUSD) {
			return nil, domainerrors.BadRequest(
				fmt.Sprintf("cannot deliver PYUSD to %s: token not available on this chain", destChain))
		}
		route.Steps = viaUSDC(sourceChain, sourceToken, destChain, tokenPYUSD)
		route.Protocol = "CCTP"
		route.EstimatedCost, route.EstimatedSeconds = "$0.40-0.60", 30
		return route, nil

	case tokenDAI:
		if !u.IsTokenNative(destChain, tokenDAI) {
			return nil, domainerrors.BadRequest(
				fmt.Sprintf("cannot deliver DAI to %s: token not available on this chain", destChain))
		}
		if sourceToken == tokenDAI && srcCfg.native[tokenDAI] {
			route.Steps = []PlannedStep{bridgeStep(sourceChain, tokenDAI, "LayerZero",
				"direct native DAI transfer")}
			route.Protocol = "LayerZero"
			route.EstimatedCost, route.EstimatedSeconds = "$0.40-0.60", 35
			return route, nil
		}
		route.Steps = viaUSDC(sourceChain, sourceToken, destChain, tokenDAI)
		route.Protocol = "CCTP"
		route.EstimatedCost, route.EstimatedSeconds = "$0.40-0.60", 35
		return route, nil

	case tokenUSDT:
		if !u.IsTokenNative(destChain, tokenUSDT) {
			return nil, domainerrors.BadRequest(
				fmt.Sprintf("cannot deliver USDT to %s: token not native on this chain", destChain))
		}
		if sourceToken == tokenUSDT && srcCfg.native[tokenUSDT] {
			route.Steps = []PlannedStep{bridgeStep(sourceChain, tokenUSDT, "Stargate",
				"direct native USDT transfer")}
			route.Protocol = "Stargate"
			route.EstimatedCost, route.EstimatedSeconds = "$0.30-0.50", 30
			return route, nil
		}
		route.Steps = viaUSDC(sourceChain, sourceToken, destChain, tokenUSDT)
		route.Protocol = "CCTP"
		route.EstimatedCost, route.EstimatedSeconds = "$0.40-0.60", 30
		return route, nil
	}

	return nil, domainerrors.BadRequest(
		fmt.Sprintf("unsupported route: %s@%s to %s@%s", sourceToken, sourceChain, destToken, destChain))
}

// AllRoutes enumerates every plannable combination across the known chains.
func (u *PlannerUsecase) AllRoutes() []*PlannedRoute {
	chains := make([]string, 0, len(plannerChains))
	for name := range plannerChains {
		chains = append(chains, name)
	}
	sort.Strings(chains)

	var routes []*PlannedRoute
	for _, src := range chains {
		for _, srcToken := range plannerTokens {
			if !u.IsTokenNative(src, srcToken) {
				continue
			}
			for _, dest := range chains {
				if src == dest {
					continue
				}
				for _, destToken := range plannerTokens {
					if route, err := u.PlanRoute(src, srcToken, dest, destToken); err == nil {
						routes = append(routes, route)
					}
				}
			}
		}
	}
	return routes
}

func validPlannerToken(token string) bool {
	for _, t := range plannerTokens {
		if t == token {
			return true
		}
	}
	return false
}

func swapStep(chain, from, to, reason string) PlannedStep {
	return PlannedStep{Action: "swap", Chain: chain, FromToken: from, ToToken: to, Protocol: "DEX", Reason: reason}
}

func bridgeStep(chain, token, protocol, reason string) PlannedStep {
	return PlannedStep{Action: "bridge", Chain: chain, FromToken: token, ToToken: token, Protocol: protocol, Reason: reason}
}

// viaUSDC is the fallback shape: convert to USDC if needed, burn-and-mint,
// then swap into the delivery token on the destination.
func viaUSDC(sourceChain, sourceToken, destChain, destToken string) []PlannedStep {
	var steps []PlannedStep
	if sourceToken != tokenUSDC {
		steps = append(steps, swapStep(sourceChain, sourceToken, tokenUSDC,
			fmt.Sprintf("convert %s to USDC for the burn-and-mint leg", sourceToken)))
	}
	steps = append(steps, bridgeStep(sourceChain, tokenUSDC, "CCTP", "native USDC burn-and-mint"))
	steps = append(steps, swapStep(destChain, tokenUSDC, destToken,
		fmt.Sprintf("deliver issuer-native %s on %s", destToken, destChain)))
	return steps
}
