// Package format renders every user-visible message of the bot.
package format

import (
	"fmt"
	"strings"

	"github.com/m3rciful/shopbot/core/catalog"
)

// Currency prefixes every rendered price.
const Currency = "₪"

const (
	backToMenu  = "\n\nReply \"menu\" for main menu."
	cancelHint  = "\n\nSend \"cancel\" to abort."
	stockMarker = " ⚠️"
)

// Menu option ids double as command aliases so a tapped button routes like typed text.
const (
	OptionList = "list"
	OptionAdd  = "add"
	OptionHelp = "help"
)

// MenuOption is one entry of the main menu.
type MenuOption struct {
	ID    string
	Label string
}

// MenuOptions lists the main menu entries in display order.
func MenuOptions() []MenuOption {
	return []MenuOption{
		{ID: OptionList, Label: "📦 List products"},
		{ID: OptionAdd, Label: "➕ Add product"},
		{ID: OptionHelp, Label: "❓ Help"},
	}
}

// MenuHeader and MenuFooter frame the buttons message.
const (
	MenuHeader = "Shop Inventory"
	MenuFooter = "Or reply 1, 2 or 3"
)

// Menu is the body of the main menu.
func Menu() string {
	return strings.Join([]string{
		"Welcome to Shop Inventory Bot!",
		"",
		"Choose an option:",
		"1. List products",
		"2. Add product",
		"3. Help",
		"",
		"Reply with the number of your choice.",
	}, "\n")
}

// UnknownCommand is the body shown for input no command matches.
func UnknownCommand() string {
	return "Hmm, I didn't quite get that. 🤔\n\n" + Menu()
}

// Courtesy is sent to senders other than the registered shop owner.
func Courtesy() string {
	return "👋 Hi there! This number runs a WhatsApp bot for a shop using the Shop Inventory plugin.\n\n" +
		"Own a WooCommerce store? Install the Shop Inventory plugin and manage your products right from WhatsApp."
}

// ProductList renders the list reply.
func ProductList(products []catalog.Product) string {
	if len(products) == 0 {
		return "No products found. Send 2 to add your first product."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Your Products (%d):\n", len(products))
	for i, p := range products {
		b.WriteString("\n")
		b.WriteString(productLine(i+1, p.Name, p.Price, p.StockQuantity))
	}
	b.WriteString(backToMenu)
	return b.String()
}

func productLine(n int, name, price string, stock *int) string {
	line := fmt.Sprintf("%d. %s — %s%s — Stock: %d", n, name, Currency, price, DerefInt(stock, 0))
	if stock == nil || *stock == 0 {
		line += stockMarker
	}
	return line
}

// ListError is the reply when products could not be fetched.
func ListError(desc string) string {
	return "❌ Error fetching products: " + desc + backToMenu
}

// ProductCreated confirms a successful create.
func ProductCreated(p catalog.CreatedProduct) string {
	return fmt.Sprintf("✅ Product created!\n%s — %s%s — Stock: %d", p.Name, Currency, p.Price, DerefInt(p.StockQuantity, 0)) + backToMenu
}

// ProductCreateError reports a failed create and how to retry.
func ProductCreateError(desc string) string {
	return "❌ Failed to create product: " + desc + "\n\nSend 2 to try again, or \"menu\" for main menu."
}

// AskName prompts for the product name.
func AskName() string { return "What is the product name?" + cancelHint }

// AskPrice prompts for the price.
func AskPrice() string { return "What is the price?" + cancelHint }

// AskStock prompts for the stock quantity.
func AskStock() string { return "How many in stock?" + cancelHint }

// InvalidPrice re-prompts after a bad price.
func InvalidPrice() string {
	return "Invalid price. Please enter a number (e.g. 29.99)." + cancelHint
}

// InvalidStock re-prompts after a bad stock quantity.
func InvalidStock() string {
	return "Invalid stock. Please enter a whole number (e.g. 50)." + cancelHint
}

// Cancelled confirms the wizard was aborted.
func Cancelled() string {
	return "Product creation cancelled." + backToMenu
}
