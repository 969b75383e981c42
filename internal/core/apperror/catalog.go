package apperror

import "net/http"

// Client errors (1000xx)
var (
	ErrClientExists            = New(http.StatusBadRequest, Detail{"Já existe uma conta vinculada a este e-mail.", 100001})
	ErrClientNotFound          = New(http.StatusNotFound, Detail{"Cliente não encontrado.", 100002})
	ErrClientFailedToStore     = New(http.StatusInternalServerError, Detail{"Falha ao criar cliente.", 100003})
	ErrClientFailedToIndex     = New(http.StatusInternalServerError, Detail{"Falha ao buscar clientes.", 100004})
	ErrClientFailedToDelete    = New(http.StatusInternalServerError, Detail{"Falha ao excluir cliente.", 100005})
	ErrClientFailedToShow      = New(http.StatusInternalServerError, Detail{"Falha ao buscar cliente.", 100006})
	ErrClientFailedToUpdate    = New(http.StatusInternalServerError, Detail{"Falha ao alterar cliente.", 100011})
	ErrClientFailedToSendEmail = New(http.StatusInternalServerError, Detail{"Falha ao enviar e-mail de ativação da conta.", 100007})
	ErrClientFailedToConfirm   = New(http.StatusInternalServerError, Detail{"Falha ao ativar conta por e-mail.", 100008})
	ErrEmailNotConfirmed       = New(http.StatusBadRequest, Detail{"Conta não ativada, por favor verifique seu e-mail para a confirmação do seu cadastro!", 100010})
)

// Auth errors (2000xx)
var (
	ErrJWTMissing          = New(http.StatusUnauthorized, Detail{"JWT is missing.", 200001})
	ErrRestrictedAccess    = New(http.StatusForbidden, Detail{"Acesso Restrito.", 200002})
	ErrTokenInvalid        = New(http.StatusUnauthorized, Detail{"Token Inválido.", 200003})
	ErrFailedGenerateToken = New(http.StatusInternalServerError, Detail{"Falha ao gerar o token.", 200005})
	ErrFailedRefreshToken  = New(http.StatusInternalServerError, Detail{"Falha ao atualizar o token.", 200006})
	ErrTokenExpired        = New(http.StatusUnauthorized, Detail{"Token expirado", 200007})
	ErrTooManyRequests     = New(http.StatusTooManyRequests, Detail{"Limite de requisições excedido.", 200009})
)

// Product errors (3000xx)
var (
	ErrProductNotFound       = New(http.StatusNotFound, Detail{"Produto não encontrado.", 300001})
	ErrProductNotFoundAll    = New(http.StatusNotFound, Detail{"Nenhum produto encontrado.", 300002})
	ErrFailedToFetchProducts = New(http.StatusInternalServerError, Detail{"Falha ao buscar produtos", 300003})
	ErrProductFailedToShow   = New(http.StatusInternalServerError, Detail{"Falha ao buscar produto.", 300004})
	ErrInvalidPage           = New(http.StatusBadRequest, Detail{"Página inválida.", 300005})
	ErrInvalidProductID      = New(http.StatusBadRequest, Detail{"ID produto inválido", 300006})
)

// Favorite errors (4000xx)
var (
	ErrDuplicateFavorite      = New(http.StatusBadRequest, Detail{"Produto já adicionado a lista de favoritos.", 400001})
	ErrFavoriteNotFound       = New(http.StatusNotFound, Detail{"Produto não encontrado na lista de favoritos.", 400002})
	ErrFavoriteFailedToStore  = New(http.StatusInternalServerError, Detail{"Falha ao favoritar produto.", 400004})
	ErrFavoriteFailedToIndex  = New(http.StatusInternalServerError, Detail{"Falha ao buscar favoritos.", 400005})
	ErrFavoriteFailedToDelete = New(http.StatusInternalServerError, Detail{"Falha ao remover produto dos favoritos.", 400006})
	ErrFavoriteFailedToShow   = New(http.StatusInternalServerError, Detail{"Falha ao buscar produto na lista de favoritos.", 400007})
)

// ErrInternal is the generic body for unexpected failures.
var ErrInternal = New(http.StatusInternalServerError, Detail{"Erro interno do servidor.", 500000})
