// Package callback encodes and decodes inline keyboard callback data
package callback

import (
	"fmt"
	"strings"

	"github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/entities"
	shoperrors "github.com/Alokchauhan110/Premium-Plan/internal/domain/shop/errors"
)

// MaxDataLength is the Telegram limit for callback data in bytes
const MaxDataLength = 64

// Kind is the intent carried by a callback
type Kind int

const (
	KindShowPlans Kind = iota + 1
	KindMainMenu
	KindSelectOffer
	KindPurchase
)

func (k Kind) String() string {
	switch k {
	case KindShowPlans:
		return "show_plans"
	case KindMainMenu:
		return "main_menu"
	case KindSelectOffer:
		return "select_offer"
	case KindPurchase:
		return "purchase"
	default:
		return "unknown"
	}
}

// Data is a decoded callback. Key is set for KindSelectOffer and KindPurchase only
type Data struct {
	Kind Kind
	Key  string
}

// ShowPlans returns the callback that lists offers
func ShowPlans() Data { return Data{Kind: KindShowPlans} }

// MainMenu returns the callback that opens the main menu
func MainMenu() Data { return Data{Kind: KindMainMenu} }

// SelectOffer returns the callback that shows one offer
func SelectOffer(key string) Data { return Data{Kind: KindSelectOffer, Key: key} }

// Purchase returns the callback that starts checkout of an offer
func Purchase(key string) Data { return Data{Kind: KindPurchase, Key: key} }

const (
	tagShowPlans = "plans"
	tagMainMenu  = "menu"
	tagOffer     = "offer"
	tagBuy       = "buy"
	separator    = ":"

	legacyShowPlans      = "show_plans"
	legacyMainMenu       = "main_menu"
	legacyOfferPrefix    = "plan_"
	legacyPurchasePrefix = "purchase_"
)

// Encode renders d as callback data
func Encode(d Data) (string, error) {
	var out string
	switch d.Kind {
	case KindShowPlans:
		out = tagShowPlans
	case KindMainMenu:
		out = tagMainMenu
	case KindSelectOffer, KindPurchase:
		if d.Key == "" {
			return "", fmt.Errorf("%w: empty key for %s", shoperrors.ErrUnknownCallback, d.Kind)
		}
		tag := tagOffer
		if d.Kind == KindPurchase {
			tag = tagBuy
		}
		out = tag + separator + d.Key
	default:
		return "", fmt.Errorf("%w: kind %d", shoperrors.ErrUnknownCallback, d.Kind)
	}

	if len(out) > MaxDataLength {
		return "", fmt.Errorf("%w: %q", shoperrors.ErrCallbackTooLong, out)
	}
	return out, nil
}

// MustEncode is Encode for callbacks known to fit, such as ShowPlans and MainMenu
func MustEncode(d Data) string {
	out, err := Encode(d)
	if err != nil {
		panic(err)
	}
	return out
}

// Decode parses callback data, accepting the current and the legacy formats
func Decode(raw string) (Data, error) {
	switch raw {
	case tagShowPlans, legacyShowPlans:
		return ShowPlans(), nil
	case tagMainMenu, legacyMainMenu:
		return MainMenu(), nil
	}

	if tag, key, ok := strings.Cut(raw, separator); ok && key != "" {
		switch tag {
		case tagOffer:
			return SelectOffer(key), nil
		case tagBuy:
			return Purchase(key), nil
		}
	}

	if key, ok := strings.CutPrefix(raw, legacyOfferPrefix); ok && key != "" {
		return SelectOffer(legacyKey(key)), nil
	}
	if key, ok := strings.CutPrefix(raw, legacyPurchasePrefix); ok && key != "" {
		return Purchase(legacyKey(key)), nil
	}

	return Data{}, fmt.Errorf("%w: %q", shoperrors.ErrUnknownCallback, raw)
}

func legacyKey(key string) string {
	if key == entities.LegacyAllAccessKey {
		return entities.AllAccessKey
	}
	return key
}
