package server

import (
	"encoding/json"
	"net/http"

	"github.com/Layr-Labs/solana-signer-go/pkg/instructions"
	"github.com/Layr-Labs/solana-signer-go/pkg/serverError"
	"github.com/Layr-Labs/solana-signer-go/pkg/types"
	"github.com/Layr-Labs/solana-signer-go/pkg/util"
)

type validatable interface {
	Validate() error
}

// decodeRequest parses the JSON body into req and checks required fields.
// Both failure modes are reported as invalid input.
func decodeRequest(r *http.Request, req validatable) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return serverError.NewValidationError("Failed to parse request: %v", err)
	}
	if err := req.Validate(); err != nil {
		return serverError.NewValidationError("%v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess[T any](w http.ResponseWriter, data T) {
	writeJSON(w, http.StatusOK, types.NewSuccessResponse(data))
}

// writeError renders err through the error taxonomy. Internal causes are
// logged and replaced by a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	se := serverError.AsServerError(err)
	s.metrics.RecordFailure(operation, string(se.Kind))

	if se.Kind == serverError.KindInternal {
		s.logger.Sugar().Errorw("Request failed",
			"operation", operation,
			"path", r.URL.Path,
			"error", se.Cause,
		)
	} else {
		s.logger.Sugar().Debugw("Request rejected",
			"operation", operation,
			"path", r.URL.Path,
			"kind", se.Kind,
			"error", se.Error(),
		)
	}
	writeJSON(w, se.HTTPStatus(), types.NewErrorResponse(se.Error()))
}

func (s *Server) handleGenerateKeypair(w http.ResponseWriter, r *http.Request) {
	kp, err := s.keyGen.GenerateKeypair(r.Context())
	if err != nil {
		s.writeError(w, r, "generate_keypair", err)
		return
	}
	defer kp.Zero()

	s.metrics.RecordKeypairGenerated()
	writeSuccess(w, types.KeypairResponse{
		Pubkey: kp.GetPublicKeyBase58(),
		Secret: kp.GetSecretKeyBase58(),
	})
}

func (s *Server) handleSignMessage(w http.ResponseWriter, r *http.Request) {
	var req types.SignMessageRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, "sign_message", err)
		return
	}

	signed, err := s.signer.SignMessage(*req.Secret, []byte(*req.Message))
	if err != nil {
		s.writeError(w, r, "sign_message", err)
		return
	}

	s.metrics.RecordMessageSigned()
	writeSuccess(w, types.SignMessageResponse{
		Signature: util.EncodeBase64(signed.Signature[:]),
		PublicKey: signed.PublicKey.String(),
		Message:   *req.Message,
	})
}

func (s *Server) handleVerifyMessage(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyMessageRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, "verify_message", err)
		return
	}

	verified, err := s.signer.VerifyMessage(*req.Pubkey, []byte(*req.Message), *req.Signature)
	if err != nil {
		s.writeError(w, r, "verify_message", err)
		return
	}

	s.metrics.RecordMessageVerified(verified.Valid)
	writeSuccess(w, types.VerifyMessageResponse{
		Valid:   verified.Valid,
		Message: *req.Message,
		Pubkey:  verified.PublicKey,
	})
}

func (s *Server) handleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTokenRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, "initialize_mint", err)
		return
	}
	ix, err := s.builder.InitializeMint(*req.MintAuthority, *req.Mint, *req.Decimals)
	s.writeInstruction(w, r, "initialize_mint", ix, err)
}

func (s *Server) handleMintToken(w http.ResponseWriter, r *http.Request) {
	var req types.MintTokenRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, "mint_to", err)
		return
	}
	ix, err := s.builder.MintTo(*req.Mint, *req.Destination, *req.Authority, *req.Amount)
	s.writeInstruction(w, r, "mint_to", ix, err)
}

func (s *Server) handleSendSol(w http.ResponseWriter, r *http.Request) {
	var req types.SendSolRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, "transfer_native", err)
		return
	}
	ix, err := s.builder.TransferNative(*req.From, *req.To, *req.Lamports)
	s.writeInstruction(w, r, "transfer_native", ix, err)
}

func (s *Server) handleSendToken(w http.ResponseWriter, r *http.Request) {
	var req types.SendTokenRequest
	if err := decodeRequest(r, &req); err != nil {
		s.writeError(w, r, "transfer_tokens", err)
		return
	}
	ix, err := s.builder.TransferTokens(*req.Destination, *req.Mint, *req.Owner, *req.Amount)
	s.writeInstruction(w, r, "transfer_tokens", ix, err)
}

func (s *Server) writeInstruction(w http.ResponseWriter, r *http.Request, kind string, ix *instructions.Instruction, err error) {
	if err != nil {
		s.writeError(w, r, kind, err)
		return
	}
	s.metrics.RecordInstructionBuilt(kind)
	writeSuccess(w, *ix.ToResponse())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, types.HealthResponse{Status: "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.logger.Sugar().Debugw("Route not found", "method", r.Method, "path", r.URL.Path)
	writeJSON(w, http.StatusNotFound, types.NewErrorResponse("Not found"))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, types.NewErrorResponse("Method not allowed"))
}
