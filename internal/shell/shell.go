package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fakestore/shop/internal/service"

	log "github.com/sirupsen/logrus"
)

const helpText = `Commands:
  home                 reset filters and return to the products
  category <name|all>  filter by category
  categories           list categories
  search <text>        edit the category search box
  go                   apply the search
  next, prev           change page
  desc <id>            show or hide a product description
  add <id>             add a product to the cart
  cart, back           open the cart, return to the products
  inc <id>, dec <id>   change a cart quantity
  rm <id>              remove a product from the cart
  help, quit`

// Shell is the terminal presentation of the shop: it reads one command per
// line, forwards it to the service and re-renders the current view.
type Shell struct {
	svc *service.Service
	in  io.Reader
	out io.Writer

	// expanded holds products whose description is open
	expanded map[int64]bool
}

func New(svc *service.Service, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		svc:      svc,
		in:       in,
		out:      out,
		expanded: make(map[int64]bool),
	}
}

var errQuit = errors.New("quit")

// Run processes input until quit, end of input or ctx cancellation
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(s.out, "Shopping Cart - type 'help' for commands")
	s.render(s.out, s.svc.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			err := s.Exec(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			s.render(s.out, s.svc.Snapshot())
		}
	}
}

// Exec runs a single command line
func (s *Shell) Exec(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd = strings.ToLower(cmd)
	arg = strings.TrimSpace(arg)

	log.Debugf("Shell command %q arg %q", cmd, arg)

	switch cmd {
	case "":
		return nil
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "quit", "exit":
		return errQuit
	case "home":
		s.svc.Home(ctx)
	case "category":
		if arg == "" {
			return errors.New("usage: category <name|all>")
		}
		s.svc.SelectCategory(arg)
	case "categories":
		fmt.Fprintln(s.out, "all")
		for _, c := range s.svc.Categories() {
			fmt.Fprintln(s.out, c)
		}
	case "search":
		s.svc.EditSearch(arg)
	case "go":
		s.svc.ApplySearch()
	case "next":
		s.svc.NextPage()
	case "prev":
		s.svc.PrevPage()
	case "cart":
		s.svc.ShowCart(ctx)
	case "back":
		s.svc.ShowCatalog(ctx)
	case "desc", "add", "inc", "dec", "rm":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("usage: %s <product id>", cmd)
		}
		return s.execProduct(ctx, cmd, id)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}

	return nil
}

func (s *Shell) execProduct(ctx context.Context, cmd string, id int64) error {
	switch cmd {
	case "desc":
		if _, ok := s.svc.Lookup(id); !ok {
			return fmt.Errorf("%w: %d", service.ErrUnknownProduct, id)
		}
		s.expanded[id] = !s.expanded[id]
	case "add":
		return s.svc.AddToCart(ctx, id)
	case "inc":
		s.svc.IncreaseQuantity(ctx, id)
	case "dec":
		s.svc.DecreaseQuantity(ctx, id)
	case "rm":
		s.svc.RemoveFromCart(ctx, id)
	}
	return nil
}
