package fee

import (
	"fmt"

	"fee_tracker/internal/app/port"
	"fee_tracker/internal/domain/entity"
)

// checkStandard rejects transactions routed to a strategy of another family.
func checkStandard(logger port.Logger, tx entity.BlockchainTransaction, standards ...entity.TokenStandard) (entity.Chain, error) {
	chain := entity.TxChain(tx)
	for _, s := range standards {
		if chain.Standard() == s {
			return chain, nil
		}
	}
	logger.Error("Transaction routed to a strategy of another standard", "chain", chain, "standards", standards)
	return chain, fmt.Errorf("%w: %s is %s, strategy handles %v", entity.ErrStandardMismatch, chain, chain.Standard(), standards)
}

func payloadRequired(chain entity.Chain) error {
	return fmt.Errorf("%w: %s", entity.ErrEstimationPayloadRequired, chain)
}
