package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rnitealiii/EliteMart/internal/app"
	"github.com/rnitealiii/EliteMart/internal/checkout"
	"github.com/rnitealiii/EliteMart/pkg/enums"
)

const replHelp = `commands:
  search <text>         filter products by name or category
  category <name>       restrict to a category ("all" resets)
  sort <key>            none | price-asc | price-desc | name-asc | name-desc
  add <product-id>      add a product to the cart
  remove <line>         remove cart line (1-based)
  qty <line> <delta>    change line quantity by delta
  cart                  show the cart
  checkout              open checkout
  whatsapp              hand the order off to the delivery chat
  website               order via website (enter the contact form)
  back                  go back one checkout step
  submit <name;email;phone;address;city>
  confirm               confirm the order
  wallet <easypaisa|jazzcash>
  qr                    pay by QR code
  close                 close checkout
  quit`

// runREPL translates terminal input into core events. It is the stand-in for
// the browser event wiring the original had; the core never sees it.
func runREPL(ctx context.Context, controller *app.Controller, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, replHelp)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		switch command {
		case "quit", "exit":
			return
		case "help":
			fmt.Fprintln(out, replHelp)
		case "search":
			controller.SetQuery(strings.Join(args, " "))
		case "category":
			controller.SetCategory(strings.Join(args, " "))
		case "sort":
			key, err := enums.ParseSortKey(argAt(args, 0))
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			controller.SetSort(key)
		case "add":
			id, err := strconv.Atoi(argAt(args, 0))
			if err != nil {
				fmt.Fprintln(out, "usage: add <product-id>")
				continue
			}
			controller.Cart().Add(ctx, id)
		case "remove":
			index, err := strconv.Atoi(argAt(args, 0))
			if err != nil {
				fmt.Fprintln(out, "usage: remove <line>")
				continue
			}
			controller.Cart().Remove(ctx, index-1)
		case "qty":
			index, errIndex := strconv.Atoi(argAt(args, 0))
			delta, errDelta := strconv.Atoi(argAt(args, 1))
			if errIndex != nil || errDelta != nil {
				fmt.Fprintln(out, "usage: qty <line> <delta>")
				continue
			}
			controller.Cart().ChangeQuantity(ctx, index-1, delta)
		case "cart":
			snapshot := controller.Cart().Snapshot()
			fmt.Fprintf(out, "items: %d  total: $%s\n", snapshot.ItemCount, snapshot.FormattedTotal())
		case "checkout":
			if err := controller.Flow().Open(ctx); err == nil {
				fmt.Fprintln(out, "checkout: choose 'whatsapp' or 'website'")
			}
		case "whatsapp":
			link, err := controller.Flow().HandoffLink(ctx)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "open in browser: %s\n", link)
		case "website":
			if err := controller.Flow().ChooseWebsiteOrder(ctx); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if info, ok := controller.Flow().PrefillCustomerInfo(ctx); ok {
				fmt.Fprintf(out, "previous contact on file: %s, %s\n", info.FullName, info.Phone)
			}
			fmt.Fprintln(out, "enter contact: submit <name;email;phone;address;city>")
		case "back":
			flow := controller.Flow()
			var err error
			switch flow.Stage() {
			case enums.StageFormEntry:
				err = flow.BackToOptions(ctx)
			case enums.StagePaymentSelect:
				err = flow.BackToForm(ctx)
			default:
				err = fmt.Errorf("nothing to go back to")
			}
			if err != nil {
				fmt.Fprintln(out, err)
			}
		case "submit":
			parts := strings.SplitN(strings.Join(args, " "), ";", 5)
			if len(parts) != 5 {
				fmt.Fprintln(out, "usage: submit <name;email;phone;address;city>")
				continue
			}
			info := checkout.CustomerInfo{
				FullName: parts[0],
				Email:    parts[1],
				Phone:    parts[2],
				Address:  parts[3],
				City:     parts[4],
			}
			if err := controller.Flow().SubmitCustomerInfo(ctx, info); err == nil {
				fmt.Fprintln(out, "choose payment: confirm | wallet <easypaisa|jazzcash> | qr")
			}
		case "confirm":
			if err := controller.Flow().ConfirmOrder(ctx); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprintf(out, "order id: %s\n", controller.Flow().OrderID())
		case "wallet":
			method, err := enums.ParsePaymentMethod(argAt(args, 0))
			if err != nil {
				fmt.Fprintln(out, "usage: wallet <easypaisa|jazzcash>")
				continue
			}
			if err := controller.Flow().PayWithWallet(ctx, method); err != nil {
				fmt.Fprintln(out, err)
			}
		case "qr":
			if err := controller.Flow().PayWithQR(ctx); err != nil {
				fmt.Fprintln(out, err)
			}
		case "close":
			controller.Flow().Close(ctx)
		default:
			fmt.Fprintf(out, "unknown command %q (try 'help')\n", command)
		}
	}
}

func argAt(args []string, index int) string {
	if index < len(args) {
		return args[index]
	}
	return ""
}
